package models

import (
	"time"
)

// Module labels are a presentation convention, not enforced at storage level.
const (
	ModuleFree     string = "Free"
	ModuleOutreach string = "Outreach"
	ModuleExchange string = "Exchange"
	ModulePay      string = "Pay"
)

const DefaultStatus string = "New"

type Website struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Website       string     `gorm:"size:512;not null;index" json:"website"`
	ContactName   *string    `gorm:"size:256" json:"contact_name"`
	ContactEmail  *string    `gorm:"size:256" json:"contact_email"`
	Module        *string    `gorm:"size:32" json:"module"`
	Traffic       *int       `json:"traffic"`
	DA            *int       `gorm:"column:da" json:"da"`
	Status        *string    `gorm:"size:64" json:"status"`
	OutreachCount int        `gorm:"not null;default:0" json:"outreach_count"`
	LastContacted *time.Time `gorm:"type:date" json:"last_contacted"`
	NextFollowup  *time.Time `gorm:"type:date" json:"next_followup"`
	Assignee      *string    `gorm:"size:128" json:"assignee"`
	Notes         *string    `gorm:"type:text" json:"notes"`
	Source        *string    `gorm:"size:64" json:"source"`
	CreatedBy     *string    `gorm:"type:text" json:"created_by"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (w Website) GetID() uint {
	return w.ID
}

func (w Website) GetCreatedAt() time.Time {
	return w.CreatedAt
}
