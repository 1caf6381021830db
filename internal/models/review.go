package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Review string `gorm:"type:text;not null" json:"review"`
	Rating int    `gorm:"not null" json:"rating"`

	TourID uint `gorm:"not null;uniqueIndex:idx_reviews_tour_user" json:"tour_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_reviews_tour_user" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
