package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validPassword := "correct-horse-battery"

	user, err := NewUser("  Traveler@Example.com ", validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Email != "traveler@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	tests := []struct {
		email    string
		password string
		want     error
	}{
		{"", validPassword, ErrEmptyEmail},
		{"invalidemail", validPassword, ErrInvalidEmail},
		{"ok@example.com", "short", ErrPasswordTooShort},
		{"ok@example.com", strings.Repeat("a", 73), ErrPasswordTooLong},
		{"ok@example.com", "", ErrEmptyPassword},
	}
	for _, tt := range tests {
		if _, err := NewUser(tt.email, tt.password); err != tt.want {
			t.Errorf("NewUser(%q, len=%d): expected %v, got %v", tt.email, len(tt.password), tt.want, err)
		}
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	u := User{ID: uuid.New(), Email: "a@example.com", HashedPassword: "$2a$10$hash"}
	if err := u.Validate(); err != nil {
		t.Errorf("Expected stored user to validate, got %v", err)
	}

	u.ID = uuid.Nil
	if err := u.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected ErrEmptyUserID, got %v", err)
	}
}
