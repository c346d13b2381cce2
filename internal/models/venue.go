package models

import "time"

type Venue struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Address     string      `gorm:"not null" json:"address"`
	City        string      `gorm:"not null" json:"city"`
	Country     string      `gorm:"not null;default:'Chile'" json:"country"`
	Capacity    int         `gorm:"not null" json:"capacity"`
	Description string      `json:"description"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Amenities   StringSlice `gorm:"type:jsonb;not null;default:'[]'" json:"amenities"`
	ContactInfo StringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"contact_info"`
	Status      string      `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
