package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Hash(t *testing.T) {
	h := New(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "regular password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
			wantErr:  false,
		},
		{
			name:     "short password",
			password: "short",
			wantErr:  false,
		},
		{
			name:     "exactly at bcrypt limit",
			password: strings.Repeat("a", MaxLength),
			wantErr:  false,
		},
		{
			name:     "longer than bcrypt limit",
			password: string(make([]byte, 73)),
			wantErr:  true,
		},
		{
			name:     "multibyte characters over the byte limit",
			password: strings.Repeat("é", 40),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := h.Hash(tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("Hash() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if !errors.Is(err, ErrTooLong) {
					t.Errorf("Hash() error = %v, want ErrTooLong", err)
				}
				return
			}
			if gotHash == "" {
				t.Error("Hash() returned empty hash")
			}
			if gotHash == tt.password {
				t.Error("Hash() returned plaintext")
			}
			if !h.Verify(tt.password, gotHash) {
				t.Error("generated hash doesn't verify input password")
			}
		})
	}
}

func TestHasher_Verify(t *testing.T) {
	h := New(bcrypt.MinCost)

	correctHash, err := h.Hash("correct_password")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	anotherHash, err := h.Hash("another_password")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			hash:        correctHash,
			password:    "wrong_password",
			shouldMatch: false,
		},
		{
			name:        "different hash same password",
			hash:        anotherHash,
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:        "empty password",
			hash:        correctHash,
			password:    "",
			shouldMatch: false,
		},
		{
			name:        "malformed hash",
			hash:        "not-a-bcrypt-hash",
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:        "empty hash",
			hash:        "",
			password:    "correct_password",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Verify(tt.password, tt.hash); got != tt.shouldMatch {
				t.Errorf("Verify() = %v, want %v", got, tt.shouldMatch)
			}
		})
	}
}

func TestHasher_SamePasswordProducesDifferentHashes(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash1, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	hash2, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password produced identical hashes")
	}
	if !h.Verify("password1", hash1) || !h.Verify("password1", hash2) {
		t.Error("both salted hashes must verify the password")
	}
}

func TestNew_InvalidCostFallsBackToDefault(t *testing.T) {
	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		h := New(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Errorf("New(%d).cost = %d, want %d", cost, h.cost, bcrypt.DefaultCost)
		}
	}
}
