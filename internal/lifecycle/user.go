package lifecycle

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/auth"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/models"
)

func UserBeforePersist() []Stage[models.User] {
	return []Stage[models.User]{
		NormalizeUser,
		HashUserPassword,
	}
}

func NormalizeUser(ctx context.Context, tx *gorm.DB, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return httperr.BadRequest("Please provide your email")
	}
	if strings.TrimSpace(u.Name) == "" {
		return httperr.BadRequest("Please tell us your name")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if !models.ValidRole(u.Role) {
		return httperr.BadRequest("Role must be one of: user, guide, lead-guide, admin")
	}
	return nil
}

// HashUserPassword swaps a bound plaintext password for its bcrypt hash.
// On a password change the changed-at stamp is backdated one second so a
// token issued in the same instant still reads as older than the change.
func HashUserPassword(ctx context.Context, tx *gorm.DB, u *models.User) error {
	if u.Password == "" {
		return nil
	}
	if len(u.Password) < 8 {
		return httperr.BadRequest("Your password must be at least 8 characters")
	}

	hashed, err := auth.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	u.Password = ""

	if u.ID != 0 {
		changed := time.Now().Add(-time.Second)
		u.PasswordChangedAt = &changed
	}
	return nil
}
