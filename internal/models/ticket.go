package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketPriority is the closed priority scale for support tickets.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// Valid reports whether p is one of the known priorities.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is a support request raised by a resident. Resolution is
// one-way: once resolved, a ticket never reopens.
type Ticket struct {
	ID                     string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title                  string         `gorm:"not null" json:"title"`
	Description            string         `json:"description"`
	UserID                 string         `gorm:"type:uuid;index;not null" json:"userId"`
	CreatedDate            time.Time      `json:"createdDate"`
	ExpectedResolutionDate time.Time      `json:"expectedResolutionDate"`
	UserPhoto              string         `json:"userPhoto"`
	Category               string         `json:"category"`
	Priority               TicketPriority `gorm:"type:varchar(16)" json:"priority"`
	Resolved               bool           `gorm:"not null;default:false" json:"resolved"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TicketPatchFields maps the JSON fields a partial update may touch to
// their database columns. Anything not listed here is silently dropped
// from incoming patches.
var TicketPatchFields = map[string]string{
	"title":                  "title",
	"description":            "description",
	"userId":                 "user_id",
	"createdDate":            "created_date",
	"expectedResolutionDate": "expected_resolution_date",
	"userPhoto":              "user_photo",
	"category":               "category",
	"priority":               "priority",
	"resolved":               "resolved",
}
