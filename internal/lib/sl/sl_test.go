package sl_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/akiba-auth/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := fmt.Errorf("storage.CreateUser: %w", errors.New("connection refused"))
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("storage.CreateUser: connection refused"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "error", attr.Key)
		assert.Empty(t, attr.Value.String())
	})
}

func TestNew_ByEnv(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{env: "local", wantJSON: false, wantDebug: true},
		{env: "dev", wantJSON: true, wantDebug: true},
		{env: "prod", wantJSON: true, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := sl.New(tt.env, &buf)

			log.Debug("debug message")
			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "debug message"))

			buf.Reset()
			log.Info("info message", sl.Err(errors.New("boom")))
			out := buf.String()
			assert.Contains(t, out, "info message")
			assert.Contains(t, out, "boom")
			assert.Equal(t, tt.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}
