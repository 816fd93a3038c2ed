package models

import (
	"time"
)

// Well-known action tags. Callers may log any non-empty action label.
const (
	ActionCreated   string = "created"
	ActionUpdate    string = "update"
	ActionNoteAdded string = "note_added"
)

// ActivityLog entries are append-only. The website reference is deliberately
// unenforced so a log can outlive its record.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WebsiteID uint      `gorm:"not null;index" json:"website_id"`
	Action    string    `gorm:"size:128;not null" json:"action"`
	Note      *string   `gorm:"type:text" json:"note"`
	User      *string   `gorm:"size:128" json:"user"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (a ActivityLog) GetID() uint {
	return a.ID
}

func (a ActivityLog) GetCreatedAt() time.Time {
	return a.Timestamp
}
