package lifecycle

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/models"
)

// Review aggregates fall back to these values when a tour has no reviews
// left.
const (
	DefaultRatingsAverage  = 4.5
	DefaultRatingsQuantity = 0
)

func ReviewBeforePersist() []Stage[models.Review] {
	return []Stage[models.Review]{ValidateReview}
}

func ReviewAfterPersist() []Stage[models.Review] {
	return []Stage[models.Review]{SyncTourRatings}
}

func ValidateReview(ctx context.Context, tx *gorm.DB, r *models.Review) error {
	if strings.TrimSpace(r.Review) == "" {
		return httperr.BadRequest("Review can not be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return httperr.BadRequest("The review rating must be between 1 and 5")
	}
	if r.TourID == 0 {
		return httperr.BadRequest("Review must belong to a tour")
	}
	if r.UserID == 0 {
		return httperr.BadRequest("Review must belong to a user")
	}
	return nil
}

// SyncTourRatings recomputes the owning tour's rating aggregate from the
// reviews on record. Read-then-write, not guarded against a concurrent
// review write on the same tour.
func SyncTourRatings(ctx context.Context, tx *gorm.DB, r *models.Review) error {
	var ratings []int
	if err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("tour_id = ?", r.TourID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	average, quantity := AggregateRatings(ratings)

	return tx.WithContext(ctx).
		Model(&models.Tour{}).
		Where("id = ?", r.TourID).
		Updates(map[string]any{
			"ratings_average":  average,
			"ratings_quantity": quantity,
		}).Error
}

// AggregateRatings returns the mean rounded to one decimal place and the
// count; with no ratings it resets to the defaults.
func AggregateRatings(ratings []int) (average float64, quantity int) {
	if len(ratings) == 0 {
		return DefaultRatingsAverage, DefaultRatingsQuantity
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	return Round1(float64(sum) / float64(len(ratings))), len(ratings)
}
