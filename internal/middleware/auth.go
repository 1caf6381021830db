package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/auth"
	"github.com/trektide/trektide/internal/config"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/models"
)

const (
	ContextUser = "currentUser"

	// SessionCookie carries the bearer token for browser clients.
	SessionCookie = "jwt"
)

// CurrentUser returns the authenticated user set by Protect.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Protect rejects requests without a valid session token. The token comes
// from the Authorization header, falling back to the session cookie; it
// must verify, its user must still exist and be active, and the user's
// password must not have changed after the token was issued.
func Protect(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, httperr.Unauthorized("You are not logged in. Please log in to get access"))
			return
		}

		claims, err := auth.VerifyToken(token, cfg.JWTSecret)
		if err != nil {
			abort(c, err)
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).
			Where("active = ?", true).
			First(&user, claims.UserID).Error; err != nil {
			abort(c, httperr.Unauthorized("The user of this token no longer exists"))
			return
		}

		if user.ChangedPasswordAfter(claims.IssuedAt) {
			abort(c, httperr.Unauthorized("Password was recently changed. Please log in again"))
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// RestrictTo allows only the listed roles past; it assumes Protect already
// ran.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abort(c, httperr.Unauthorized("You are not logged in. Please log in to get access"))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		abort(c, httperr.Forbidden("You do not have permission to perform this action"))
	}
}

// IsLoggedIn detects a session for rendered pages without ever failing the
// request; templates get the user when there is one.
func IsLoggedIn(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.VerifyToken(token, cfg.JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).
			Where("active = ?", true).
			First(&user, claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		if user.ChangedPasswordAfter(claims.IssuedAt) {
			c.Next()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
