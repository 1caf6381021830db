package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/apifeatures"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/httpresp"
	"github.com/trektide/trektide/internal/lifecycle"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/models"
)

// tourParam is the tour wildcard on nested review routes. It shares the
// ":id" name with the tour routes it hangs off.
func tourParam(c *gin.Context) string {
	return c.Param("id")
}

type ReviewHandler struct {
	Res Resource[models.Review]
	db  *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		Res: Resource[models.Review]{
			DB: db,
			Shape: apifeatures.Whitelist{
				Filter: []string{"rating", "tour_id", "user_id"},
				Sort:   []string{"rating", "created_at"},
				Fields: []string{"id", "review", "rating", "tour_id", "user_id", "created_at"},
			},
			ListScope: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				// Nested under a tour, the list is that tour's reviews.
				if tourID := tourParam(c); tourID != "" {
					q = q.Where("tour_id = ?", tourID)
				}
				return q
			},
			Before:      lifecycle.ReviewBeforePersist(),
			After:       lifecycle.ReviewAfterPersist(),
			AfterDelete: lifecycle.ReviewAfterPersist(),
			Preloads:    []string{"User"},
		},
		db: db,
	}
}

// Create fills tour and user from the route and session when the body
// leaves them out, then runs the standard persist pipeline.
func (h *ReviewHandler) Create(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}

	if review.TourID == 0 {
		if tourID, err := strconv.ParseUint(tourParam(c), 10, 64); err == nil {
			review.TourID = uint(tourID)
		}
	}
	if user := middleware.CurrentUser(c); user != nil {
		review.UserID = user.ID
	}

	ctx := c.Request.Context()
	if err := lifecycle.Run(ctx, h.db, &review, h.Res.Before); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.db.WithContext(ctx).Create(&review).Error; err != nil {
		_ = c.Error(err)
		return
	}

	if err := lifecycle.Run(ctx, h.db, &review, h.Res.After); err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusCreated, review)
}
