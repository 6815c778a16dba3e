package models

import "time"

// NotificationKind defines the severity of a notification
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindWarning NotificationKind = "warning"
	KindUrgent  NotificationKind = "urgent"
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

type Notification struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Kind      NotificationKind `gorm:"not null;default:info" json:"kind"`
	Read      bool             `gorm:"default:false" json:"read"`
	Link      string           `json:"link,omitempty"`
	CreatedAt time.Time        `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
