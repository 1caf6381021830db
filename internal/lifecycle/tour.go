package lifecycle

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/models"
)

func TourBeforePersist() []Stage[models.Tour] {
	return []Stage[models.Tour]{
		ValidateTour,
		DeriveTourSlug,
	}
}

func ValidateTour(ctx context.Context, tx *gorm.DB, t *models.Tour) error {
	if strings.TrimSpace(t.Name) == "" {
		return httperr.BadRequest("A tour must have a name")
	}
	if !models.ValidDifficulty(t.Difficulty) {
		return httperr.BadRequest("Difficulty is either: easy, medium, difficult")
	}
	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		return httperr.BadRequest("Discount price should be below the regular price")
	}
	// New tours carry no reviews; the aggregate starts at the default
	// rather than failing the range check.
	if t.RatingsAverage == 0 {
		t.RatingsAverage = DefaultRatingsAverage
	}
	if t.RatingsAverage < 1 || t.RatingsAverage > 5 {
		return httperr.BadRequest("A tour rating must be between 1.0 and 5.0")
	}
	t.RatingsAverage = Round1(t.RatingsAverage)
	return nil
}

func DeriveTourSlug(ctx context.Context, tx *gorm.DB, t *models.Tour) error {
	t.Slug = Slugify(t.Name)
	return nil
}

// Slugify lowercases the name and collapses anything outside [a-z0-9] into
// single dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Round1 rounds to one decimal place, the precision kept for rating
// averages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
