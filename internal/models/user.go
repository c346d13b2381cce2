package models

import "time"

type AdminRole string

const (
	RoleAdmin        AdminRole = "admin"
	RoleSuperAdmin   AdminRole = "super_admin"
	RoleEventManager AdminRole = "event_manager"
)

// FullPermissions is granted to allow-listed emails bootstrapped at first login.
var FullPermissions = StringSlice{
	"manage_events", "manage_users", "view_analytics", "financial_reports",
	"manage_venues", "security_logs", "system_settings", "view_dashboard",
	"scan_tickets",
}

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SubjectID     string     `gorm:"uniqueIndex;not null" json:"subject_id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	Status        string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AdminUser struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	Role        AdminRole   `gorm:"type:varchar(20);not null" json:"role"`
	Permissions StringSlice `gorm:"type:jsonb;not null;default:'[]'" json:"permissions"`
	IsActive    bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
