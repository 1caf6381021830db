package lifecycle

import (
	"context"
	"testing"

	"github.com/trektide/trektide/internal/models"
)

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name         string
		ratings      []int
		wantAverage  float64
		wantQuantity int
	}{
		{"single review", []int{4}, 4.0, 1},
		{"mean rounded to one decimal", []int{5, 4, 5}, 4.7, 3},
		{"all fives", []int{5, 5, 5, 5}, 5.0, 4},
		{"no reviews resets to defaults", nil, 4.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			average, quantity := AggregateRatings(tt.ratings)
			if average != tt.wantAverage || quantity != tt.wantQuantity {
				t.Errorf("AggregateRatings(%v) = (%v, %d), want (%v, %d)",
					tt.ratings, average, quantity, tt.wantAverage, tt.wantQuantity)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	valid := func() models.Review {
		return models.Review{Review: "Loved it", Rating: 5, TourID: 1, UserID: 1}
	}

	review := valid()
	if err := ValidateReview(context.Background(), nil, &review); err != nil {
		t.Errorf("valid review rejected: %v", err)
	}

	review = valid()
	review.Review = "  "
	if err := ValidateReview(context.Background(), nil, &review); err == nil {
		t.Error("blank review text accepted")
	}

	review = valid()
	review.Rating = 0
	if err := ValidateReview(context.Background(), nil, &review); err == nil {
		t.Error("rating below 1 accepted")
	}

	review = valid()
	review.Rating = 6
	if err := ValidateReview(context.Background(), nil, &review); err == nil {
		t.Error("rating above 5 accepted")
	}

	review = valid()
	review.TourID = 0
	if err := ValidateReview(context.Background(), nil, &review); err == nil {
		t.Error("review without a tour accepted")
	}

	review = valid()
	review.UserID = 0
	if err := ValidateReview(context.Background(), nil, &review); err == nil {
		t.Error("review without a user accepted")
	}
}
