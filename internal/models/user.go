package models

import "time"

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:40;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Photo string `gorm:"size:255;default:'default.jpg'" json:"photo"`
	Role  string `gorm:"size:20;default:'user'" json:"role"`

	// Password only carries plaintext between request binding and the
	// hashing stage. It is never persisted or serialized.
	Password     string `gorm:"-" json:"password,omitempty"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `gorm:"size:64" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	Active bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change must be
// rejected.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// ResetTokenValid reports whether the stored reset-token hash matches and
// has not expired.
func (u *User) ResetTokenValid(hash string, now time.Time) bool {
	if u.PasswordResetToken == "" || u.PasswordResetExpires == nil {
		return false
	}
	return u.PasswordResetToken == hash && u.PasswordResetExpires.After(now)
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}
