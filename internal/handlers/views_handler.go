package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/models"
)

type ViewsHandler struct {
	db *gorm.DB
}

func NewViewsHandler(db *gorm.DB) *ViewsHandler {
	return &ViewsHandler{db: db}
}

func (h *ViewsHandler) Overview(c *gin.Context) {
	var tours []models.Tour
	if err := h.db.WithContext(c.Request.Context()).
		Where("secret_tour = ?", false).
		Order("created_at DESC").
		Find(&tours).Error; err != nil {
		_ = c.Error(err)
		return
	}

	c.HTML(http.StatusOK, "overview.html", gin.H{
		"title": "All Tours",
		"tours": tours,
		"user":  middleware.CurrentUser(c),
	})
}

func (h *ViewsHandler) TourDetail(c *gin.Context) {
	var tour models.Tour
	err := h.db.WithContext(c.Request.Context()).
		Preload("Locations").
		Preload("Guides").
		Preload("Reviews").
		Preload("Reviews.User").
		Where("slug = ? AND secret_tour = ?", c.Param("slug"), false).
		First(&tour).Error
	if err != nil {
		_ = c.Error(httperr.NotFound("There is no tour with that name"))
		return
	}

	c.HTML(http.StatusOK, "tour.html", gin.H{
		"title": tour.Name + " Tour",
		"tour":  tour,
		"user":  middleware.CurrentUser(c),
	})
}

func (h *ViewsHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Log into your account",
		"user":  middleware.CurrentUser(c),
	})
}

func (h *ViewsHandler) Account(c *gin.Context) {
	c.HTML(http.StatusOK, "account.html", gin.H{
		"title": "Your account",
		"user":  middleware.CurrentUser(c),
	})
}

// MyTours renders the overview limited to tours the user has booked.
func (h *ViewsHandler) MyTours(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var bookings []models.Booking
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		Find(&bookings).Error; err != nil {
		_ = c.Error(err)
		return
	}

	tourIDs := make([]uint, 0, len(bookings))
	for _, booking := range bookings {
		tourIDs = append(tourIDs, booking.TourID)
	}

	var tours []models.Tour
	if len(tourIDs) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Where("id IN ?", tourIDs).
			Find(&tours).Error; err != nil {
			_ = c.Error(err)
			return
		}
	}

	c.HTML(http.StatusOK, "overview.html", gin.H{
		"title": "My Tours",
		"tours": tours,
		"user":  user,
	})
}
