package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/auth"
	"github.com/trektide/trektide/internal/config"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/httpresp"
	"github.com/trektide/trektide/internal/lifecycle"
	"github.com/trektide/trektide/internal/mail"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/models"
	"github.com/trektide/trektide/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	mailer   *mail.Mailer
	dispatch *mail.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer *mail.Mailer, dispatch *mail.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer, dispatch: dispatch}
}

// --------- Requests ---------

type SignupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"password_current" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}

	if req.Password != req.PasswordConfirm {
		_ = c.Error(httperr.BadRequest("Passwords are not the same"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		_ = c.Error(httperr.BadRequest("Please provide a valid email address"))
		return
	}

	// Only the fields we name get in; nobody signs up as admin.
	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: req.Password,
		Role:     models.RoleUser,
	}

	ctx := c.Request.Context()
	if err := lifecycle.Run(ctx, h.db, &user, lifecycle.UserBeforePersist()); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		_ = c.Error(err)
		return
	}

	h.dispatch.SendWelcome(&user, h.cfg.BaseURL+"/me")

	h.sendToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(httperr.BadRequest("Please provide email and password"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		_ = c.Error(httperr.Unauthorized("Incorrect email or password"))
		return
	}

	h.sendToken(c, http.StatusOK, &user)
}

// Logout overrides the session cookie with a short-lived dummy value.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "loggedout", 10, "/", "", h.cfg.Production(), true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(httperr.BadRequest("Please provide your email"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {
		_ = c.Error(httperr.NotFound("There is no user with that email address"))
		return
	}

	token, err := auth.NewResetToken()
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password_reset_token":   token.Hash,
		"password_reset_expires": token.ExpiresAt,
	}).Error; err != nil {
		_ = c.Error(err)
		return
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password/%s", h.cfg.BaseURL, token.Plain)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password to:\n%s\n\nIf you didn't forget your password, please ignore this email. The link is valid for 10 minutes.",
		resetURL,
	)

	// Sent synchronously: if the mail can't go out, the stored token is
	// useless and gets cleared.
	if err := h.mailer.Send(user.Email, "Your password reset token (valid for 10 min)", body); err != nil {
		h.db.WithContext(ctx).Model(&user).Updates(map[string]any{
			"password_reset_token":   "",
			"password_reset_expires": nil,
		})
		_ = c.Error(httperr.Internal("There was an error sending the email, try again later"))
		return
	}

	httpresp.Message(c, http.StatusOK, "Token sent to email!")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}

	if req.Password != req.PasswordConfirm {
		_ = c.Error(httperr.BadRequest("Passwords are not the same"))
		return
	}

	hashed := auth.HashResetToken(c.Param("token"))
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", hashed, time.Now()).
		First(&user).Error; err != nil {
		_ = c.Error(httperr.BadRequest("Token is invalid or has expired"))
		return
	}

	user.Password = req.Password
	if err := lifecycle.Run(ctx, h.db, &user, lifecycle.UserBeforePersist()); err != nil {
		_ = c.Error(err)
		return
	}
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusOK, &user)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		_ = c.Error(httperr.Unauthorized("You are not logged in. Please log in to get access"))
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}

	if req.Password != req.PasswordConfirm {
		_ = c.Error(httperr.BadRequest("Passwords are not the same"))
		return
	}

	if !auth.CheckPassword(req.PasswordCurrent, user.PasswordHash) {
		_ = c.Error(httperr.Unauthorized("Your current password is wrong"))
		return
	}

	ctx := c.Request.Context()
	user.Password = req.Password
	if err := lifecycle.Run(ctx, h.db, user, lifecycle.UserBeforePersist()); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.db.WithContext(ctx).Save(user).Error; err != nil {
		_ = c.Error(err)
		return
	}

	h.sendToken(c, http.StatusOK, user)
}

// --------- Token response ---------

func (h *AuthHandler) sendToken(c *gin.Context, status int, user *models.User) {
	token, err := auth.SignToken(user.ID, h.cfg.JWTSecret, h.cfg.JWTExpires)
	if err != nil {
		_ = c.Error(err)
		return
	}

	maxAge := int(h.cfg.JWTCookieExpires.Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.cfg.Production(), true)

	c.JSON(status, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}
