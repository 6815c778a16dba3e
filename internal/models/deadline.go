package models

import "time"

// DeadlineCategory defines the category of a deadline
type DeadlineCategory string

const (
	CategoryHearing    DeadlineCategory = "hearing"
	CategoryProcedural DeadlineCategory = "procedural-deadline"
	CategoryMeeting    DeadlineCategory = "meeting"
	CategoryOther      DeadlineCategory = "other"
)

// DeadlinePriority defines the priority of a deadline
type DeadlinePriority string

const (
	PriorityHigh   DeadlinePriority = "high"
	PriorityMedium DeadlinePriority = "medium"
	PriorityLow    DeadlinePriority = "low"
)

type Deadline struct {
	ID          string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	DueDate     time.Time        `gorm:"type:date;not null;index" json:"due_date"`
	Category    DeadlineCategory `gorm:"not null;default:other" json:"category"`
	Priority    DeadlinePriority `gorm:"not null;default:medium" json:"priority"`
	Completed   bool             `gorm:"default:false" json:"completed"`
	CaseID      *string          `gorm:"type:uuid" json:"case_id,omitempty"`
	CreatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Associations. Case is normalized at the boundary into a single
	// optional reference regardless of how the join surfaces it.
	User *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Case *LegalCase `gorm:"foreignKey:CaseID" json:"case,omitempty"`
}

func (Deadline) TableName() string {
	return "deadlines"
}

// DueOn reports whether the deadline falls on the given calendar day.
// Due dates carry no time component, so only Y/M/D are compared.
func (d *Deadline) DueOn(day time.Time) bool {
	y1, m1, d1 := d.DueDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
