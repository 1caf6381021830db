package models

import "time"

const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// GeoPoint is a WGS84 point with display metadata.
type GeoPoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `gorm:"size:255" json:"address"`
	Description string  `gorm:"size:255" json:"description"`
}

// TourLocation is a waypoint owned by its tour; it has no life of its own.
type TourLocation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TourID   uint `gorm:"index" json:"-"`
	GeoPoint `gorm:"embedded"`
	Day      int `json:"day"`
}

type Tour struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:40;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:60;index" json:"slug"`

	Duration     int    `gorm:"not null" json:"duration"`
	MaxGroupSize int    `gorm:"not null" json:"max_group_size"`
	Difficulty   string `gorm:"size:20;not null" json:"difficulty"`

	RatingsAverage  float64 `gorm:"default:4.5" json:"ratings_average"`
	RatingsQuantity int     `gorm:"default:0" json:"ratings_quantity"`

	Price         float64 `gorm:"not null" json:"price"`
	PriceDiscount float64 `json:"price_discount,omitempty"`

	Summary     string `gorm:"size:255;not null" json:"summary"`
	Description string `gorm:"type:text" json:"description"`

	ImageCover string   `gorm:"size:255" json:"image_cover"`
	Images     []string `gorm:"serializer:json" json:"images"`

	StartDates []time.Time `gorm:"serializer:json" json:"start_dates"`

	SecretTour bool `gorm:"default:false" json:"-"`

	StartLocation GeoPoint       `gorm:"embedded;embeddedPrefix:start_" json:"start_location"`
	Locations     []TourLocation `gorm:"constraint:OnDelete:CASCADE" json:"locations"`

	Guides []User `gorm:"many2many:tour_guides" json:"guides,omitempty"`

	Reviews []Review `json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationWeeks mirrors the derived field exposed in tour payloads.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}
