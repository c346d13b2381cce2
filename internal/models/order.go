package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type TicketStatus string

const (
	TicketReserved  TicketStatus = "reserved"
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
	TicketRefunded  TicketStatus = "refunded"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	EventID     uint        `gorm:"index;not null" json:"event_id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Ticket struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	OrderID      uint         `gorm:"index;not null" json:"order_id"`
	EventID      uint         `gorm:"index;not null" json:"event_id"`
	SectionID    uint         `gorm:"not null" json:"section_id"`
	SeatID       uint         `gorm:"index;not null" json:"seat_id"`
	TicketNumber string       `gorm:"uniqueIndex;not null" json:"ticket_number"`
	ScanCode     string       `gorm:"uniqueIndex;not null" json:"scan_code"`
	Price        float64      `gorm:"not null" json:"price"`
	Status       TicketStatus `gorm:"type:varchar(20);not null;default:'reserved'" json:"status"`
	UsedAt       *time.Time   `json:"used_at,omitempty"`
	UsedBy       string       `json:"used_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
