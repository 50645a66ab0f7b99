package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "no database",
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"status":"ok"}}`,
		},
		{
			name:           "database reachable",
			db:             pingerFunc(func(context.Context) error { return nil }),
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"status":"ok"}}`,
		},
		{
			name:           "database down",
			db:             pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantStatusCode: http.StatusServiceUnavailable,
			wantBody:       `{"status":"Error","error":"database is unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), tt.db)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
