package models

import "time"

// LegalCase is the minimal slice of the case table this subsystem
// needs: the display number used when composing deadline messages.
// Full case CRUD lives outside the notification engine.
type LegalCase struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CaseNumber string    `gorm:"not null" json:"case_number"`
	ClientName string    `json:"client_name,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LegalCase) TableName() string {
	return "cases"
}
