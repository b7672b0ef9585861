package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/splitledger/splitledger/internal/auth"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	store := newTestStore(t)
	jwtManager := auth.NewJWTManager("test-secret-key-at-least-32-chars!!", time.Hour)
	return NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store)
}

func TestAuthService(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	t.Run("register then login", func(t *testing.T) {
		session, err := svc.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if session.User.ID == "" || session.Token == "" {
			t.Errorf("incomplete session: %+v", session)
		}

		login, err := svc.Login(ctx, "alice@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if login.User.ID != session.User.ID {
			t.Errorf("login user %s, want %s", login.User.ID, session.User.ID)
		}

		user, err := svc.CurrentUser(ctx, session.User.ID)
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("Email = %s", user.Email)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if _, err := svc.Register(ctx, "bob@example.com", "Bob", "password123"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := svc.Register(ctx, "bob@example.com", "Bobby", "password456"); !errors.Is(err, auth.ErrEmailExists) {
			t.Errorf("Register error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		if _, err := svc.Register(ctx, "carol@example.com", "Carol", "short"); !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("Register error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Login(ctx, "bob@example.com", "not-the-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
		}
		if _, err := svc.CurrentUser(ctx, "no-such-id"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("CurrentUser error = %v, want ErrInvalidCredentials", err)
		}
	})
}
