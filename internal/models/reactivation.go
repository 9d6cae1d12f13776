package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reactivation request states.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ReactivationRequest is an institute's submission of renewed accreditation
// details for admin re-approval after its accreditation expired. At most one
// pending request may exist per institute.
type ReactivationRequest struct {
	RequestID          string         `gorm:"column:request_id;primaryKey;size:64" json:"request_id"`
	InstID             string         `gorm:"column:instid;index;not null;size:64" json:"instid"`
	NewAccreditationNo string         `gorm:"size:64;not null" json:"new_accreditation_no"`
	NewValidFrom       time.Time      `gorm:"not null" json:"new_valid_from"`
	NewValidTo         time.Time      `gorm:"not null" json:"new_valid_to"`
	Documents          datatypes.JSON `json:"documents,omitempty"`
	Status             string         `gorm:"size:16;not null;default:pending" json:"status"`
	SubmittedAt        time.Time      `gorm:"not null" json:"submitted_at"`
	ReviewedAt         *time.Time     `json:"reviewed_at,omitempty"`
	ReviewerNotes      string         `gorm:"size:1024" json:"reviewer_notes,omitempty"`
}
