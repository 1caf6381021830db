package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TourID uint `gorm:"not null" json:"tour_id"`
	Tour   Tour `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tour,omitempty"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	Price float64 `gorm:"not null" json:"price"`

	// Pointer so an explicit false survives the insert; a plain bool
	// would read as unset and take the column default.
	Paid *bool `gorm:"default:true" json:"paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
