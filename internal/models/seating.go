package models

import "time"

type SectionType string

const (
	SectionGeneral SectionType = "general"
	SectionVIP     SectionType = "vip"
	SectionPremium SectionType = "premium"
	SectionBox     SectionType = "box"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
	SeatSold      SeatStatus = "sold"
)

type Section struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	EventID   uint        `gorm:"index;not null" json:"event_id"`
	Name      string      `gorm:"not null" json:"name"`
	Type      SectionType `gorm:"type:varchar(20);not null;default:'general'" json:"type"`
	Price     float64     `gorm:"not null" json:"price"`
	Color     string      `json:"color"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Seat struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SectionID     uint       `gorm:"index;not null" json:"section_id"`
	RowName       string     `gorm:"not null" json:"row_name"`
	SeatNumber    int        `gorm:"not null" json:"seat_number"`
	Status        SeatStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	X             int        `json:"x"`
	Y             int        `json:"y"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
