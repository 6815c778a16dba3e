package models

import "time"

// User is owned by the external auth collaborator; only the identity
// is needed here as a foreign-key anchor for deadlines and
// notifications.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
