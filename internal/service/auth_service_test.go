package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	user, family, err := env.auth.Register(context.Background(), nil, "parent@example.com", "secret123", "Pat", "The Pats")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if family.OwnerID != user.ID {
		t.Errorf("family owner = %d, want %d", family.OwnerID, user.ID)
	}
	if family.Name != "The Pats" {
		t.Errorf("family name = %q, want The Pats", family.Name)
	}

	session, loggedIn, err := env.auth.Login("parent@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user = %d, want %d", loggedIn.ID, user.ID)
	}

	validated, err := env.auth.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("validated user = %d, want %d", validated.ID, user.ID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	if _, _, err := env.auth.Register(ctx, nil, "parent@example.com", "secret123", "Pat", "Fam"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, _, err := env.auth.Register(ctx, nil, "parent@example.com", "different1", "Sam", "Other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		password   string
		userName   string
		familyName string
	}{
		{"bad email", "not-an-email", "secret123", "Pat", "Fam"},
		{"short password", "parent@example.com", "short", "Pat", "Fam"},
		{"blank name", "parent@example.com", "secret123", "  ", "Fam"},
		{"blank family", "parent@example.com", "secret123", "Pat", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := env.auth.Register(ctx, nil, tt.email, tt.password, tt.userName, tt.familyName); err == nil {
				t.Error("Register should have failed")
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.auth.Register(ctx, nil, "parent@example.com", "secret123", "Pat", "Fam")

	if _, _, err := env.auth.Login("parent@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := env.auth.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.auth.Register(ctx, nil, "parent@example.com", "secret123", "Pat", "Fam")
	session, _, err := env.auth.Login("parent@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := env.auth.Logout(session.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := env.auth.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("after logout: err = %v, want ErrSessionNotFound", err)
	}
}

func TestOAuthLoginCreatesAccountAndFamily(t *testing.T) {
	env := setupTestEnv(t)

	session, user, err := env.auth.OAuthLogin("google", "sub-123", "oauth@example.com", "Olive")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}
	if session == nil {
		t.Fatal("expected a session")
	}

	family, err := env.familyRepo.GetFamilyByOwner(user.ID)
	if err != nil {
		t.Fatalf("GetFamilyByOwner failed: %v", err)
	}
	if family == nil {
		t.Fatal("oauth signup should create a family")
	}

	// Second sign-in reuses the account
	_, again, err := env.auth.OAuthLogin("google", "sub-123", "oauth@example.com", "Olive")
	if err != nil {
		t.Fatalf("second OAuthLogin failed: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("second login user = %d, want %d", again.ID, user.ID)
	}
}

func TestOAuthLoginLinksExistingEmail(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, _, err := env.auth.Register(ctx, nil, "parent@example.com", "secret123", "Pat", "Fam")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, linked, err := env.auth.OAuthLogin("google", "sub-456", "parent@example.com", "Pat")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}
	if linked.ID != user.ID {
		t.Errorf("linked user = %d, want existing %d", linked.ID, user.ID)
	}
}
