package password_test

import (
	"conference/shared/password"
	"errors"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "default admin password", password: "admin123"},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode", password: "මුරපදය123"},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 72)},
		{name: "empty", password: "", expectedError: password.ErrEmptyPassword},
		{name: "longer than bcrypt allows", password: strings.Repeat("a", 100), expectedError: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}

				if hash != "" {
					t.Errorf("expected empty hash on error, got %s", hash)
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("expected bcrypt hash format, got %s", hash)
			}

			if err := password.Verify(tt.password, hash); err != nil {
				t.Errorf("expected verification to succeed, got %v", err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("admin123")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "matching password", password: "admin123", hash: hash},
		{name: "wrong password", password: "admin124", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: "admin123", hash: "", expectedError: password.ErrInvalidPassword},
		{name: "malformed hash", password: "admin123", hash: "not-a-bcrypt-hash", expectedError: password.ErrVerifyingPassword},
		{name: "truncated hash", password: "admin123", hash: hash[:10], expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedError == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if tt.expectedError != nil && !errors.Is(err, tt.expectedError) {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("admin123")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	second, err := password.Hash("admin123")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if first == second {
		t.Error("expected different hashes for the same password")
	}
}
