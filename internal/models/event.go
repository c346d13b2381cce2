package models

import "time"

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventSoldOut   EventStatus = "sold_out"
	EventCancelled EventStatus = "cancelled"
)

// Event denormalizes venue fields by copy; venues are managed independently.
type Event struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `gorm:"not null" json:"description"`
	Date         string      `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Time         string      `gorm:"type:varchar(5);not null" json:"time"`  // HH:MM
	VenueName    string      `gorm:"not null" json:"venue_name"`
	VenueAddress string      `gorm:"not null" json:"venue_address"`
	VenueCity    string      `gorm:"not null" json:"venue_city"`
	ImageURL     string      `json:"image_url"`
	Category     string      `gorm:"not null" json:"category"`
	Status       EventStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy    uint        `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
