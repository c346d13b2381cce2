package models

import "time"

// SecurityLog is append-only; rows are never updated or deleted.
type SecurityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id,omitempty"`
	Action     string    `gorm:"not null" json:"action"`
	Resource   string    `json:"resource,omitempty"`
	ResourceID *uint     `json:"resource_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Details    StringMap `gorm:"type:jsonb;not null;default:'{}'" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
