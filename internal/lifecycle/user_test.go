package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/trektide/trektide/internal/auth"
	"github.com/trektide/trektide/internal/models"
)

func TestNormalizeUser(t *testing.T) {
	user := models.User{Name: "Ada", Email: "  Ada@Example.COM "}
	if err := NormalizeUser(context.Background(), nil, &user); err != nil {
		t.Fatalf("NormalizeUser: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Email = %q, want lowercased and trimmed", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want default %q", user.Role, models.RoleUser)
	}

	user = models.User{Name: "Ada"}
	if err := NormalizeUser(context.Background(), nil, &user); err == nil {
		t.Error("missing email accepted")
	}

	user = models.User{Email: "ada@example.com"}
	if err := NormalizeUser(context.Background(), nil, &user); err == nil {
		t.Error("missing name accepted")
	}

	user = models.User{Name: "Ada", Email: "ada@example.com", Role: "superadmin"}
	if err := NormalizeUser(context.Background(), nil, &user); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestHashUserPassword(t *testing.T) {
	user := models.User{Password: "pass1234"}
	if err := HashUserPassword(context.Background(), nil, &user); err != nil {
		t.Fatalf("HashUserPassword: %v", err)
	}
	if user.Password != "" {
		t.Error("plaintext password kept after hashing")
	}
	if !auth.CheckPassword("pass1234", user.PasswordHash) {
		t.Error("stored hash does not verify against the original password")
	}
	if user.PasswordChangedAt != nil {
		t.Error("changed-at stamped on a fresh user")
	}
}

func TestHashUserPassword_TooShort(t *testing.T) {
	user := models.User{Password: "short"}
	if err := HashUserPassword(context.Background(), nil, &user); err == nil {
		t.Error("seven-character password accepted")
	}
}

func TestHashUserPassword_BackdatesChangeOnExistingUser(t *testing.T) {
	user := models.User{Password: "pass1234"}
	user.ID = 7
	if err := HashUserPassword(context.Background(), nil, &user); err != nil {
		t.Fatalf("HashUserPassword: %v", err)
	}
	if user.PasswordChangedAt == nil {
		t.Fatal("changed-at not stamped on a password change")
	}
	if !user.PasswordChangedAt.Before(time.Now()) {
		t.Error("changed-at stamp is not backdated")
	}
}

func TestHashUserPassword_NoopWithoutPassword(t *testing.T) {
	user := models.User{PasswordHash: "existing"}
	if err := HashUserPassword(context.Background(), nil, &user); err != nil {
		t.Fatalf("HashUserPassword: %v", err)
	}
	if user.PasswordHash != "existing" {
		t.Error("hash rewritten without a new password")
	}
}
