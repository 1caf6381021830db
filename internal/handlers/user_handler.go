package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/apifeatures"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/httpresp"
	"github.com/trektide/trektide/internal/lifecycle"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/models"
	"github.com/trektide/trektide/internal/storage"
)

type UserHandler struct {
	Res   Resource[models.User]
	db    *gorm.DB
	store *storage.Store
}

func NewUserHandler(db *gorm.DB, store *storage.Store) *UserHandler {
	return &UserHandler{
		Res: Resource[models.User]{
			DB: db,
			Shape: apifeatures.Whitelist{
				Filter: []string{"name", "email", "role"},
				Sort:   []string{"name", "email", "role", "created_at"},
				Fields: []string{"id", "name", "email", "photo", "role", "created_at"},
			},
			Scope: func(q *gorm.DB) *gorm.DB {
				// Soft-deleted users stay out of every read.
				return q.Where("active = ?", true)
			},
			Before: lifecycle.UserBeforePersist(),
		},
		db:    db,
		store: store,
	}
}

// CreateUser exists so the admin collection route answers something
// sensible; accounts are only created through signup.
func (h *UserHandler) CreateUser(c *gin.Context) {
	_ = c.Error(httperr.New(http.StatusInternalServerError, "This route is not defined. Please use /signup instead"))
}

func (h *UserHandler) GetMe(c *gin.Context) {
	httpresp.Data(c, http.StatusOK, middleware.CurrentUser(c))
}

type updateMeRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

// bindUpdateMe decodes the profile fields. JSON bodies bind through the
// cached-body variant: the password probe already consumed Request.Body,
// a second plain bind would read it empty.
func bindUpdateMe(c *gin.Context) (updateMeRequest, error) {
	var req updateMeRequest

	if strings.Contains(c.ContentType(), "json") {
		var probe map[string]any
		if err := c.ShouldBindBodyWithJSON(&probe); err == nil {
			if _, ok := probe["password"]; ok {
				return req, httperr.BadRequest("This route is not for password updates. Please use /update-my-password")
			}
		}

		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			return req, httperr.BadRequest("Invalid input data: " + err.Error())
		}
		return req, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return req, httperr.BadRequest("Invalid input data: " + err.Error())
	}
	return req, nil
}

// UpdateMe lets a user change name, email and photo. Password fields are
// rejected here; password changes go through their own flow.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := bindUpdateMe(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()

	if file, err := c.FormFile("photo"); err == nil {
		data, err := readUpload(file)
		if err != nil {
			_ = c.Error(err)
			return
		}

		processed, err := storage.ProcessImage(data, storage.UserPhotoSize, storage.UserPhotoSize)
		if err != nil {
			_ = c.Error(httperr.BadRequest("Not an image. Please upload only images"))
			return
		}

		key := fmt.Sprintf("users/user-%d-%d.webp", user.ID, time.Now().UnixMilli())
		url, err := h.store.Upload(ctx, key, processed, "image/webp")
		if err != nil {
			_ = c.Error(err)
			return
		}
		user.Photo = url
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := lifecycle.Run(ctx, h.db, user, lifecycle.UserBeforePersist()); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.db.WithContext(ctx).Save(user).Error; err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusOK, gin.H{"user": user})
}

// DeleteMe deactivates the account; the record stays.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("active", false).Error; err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.NoContent(c)
}
