package models

import (
	"time"

	"gorm.io/datatypes"
)

// Institute verification states.
const (
	VerifiedStatusPending  = "pending"
	VerifiedStatusVerified = "verified"
	VerifiedStatusRejected = "rejected"
)

// Institute is a DG Shipping accredited training provider. Each institute is
// owned by exactly one institute-role user.
type Institute struct {
	InstID          string         `gorm:"column:instid;primaryKey;size:64" json:"instid"`
	UserID          string         `gorm:"column:userid;uniqueIndex;not null;size:64" json:"userid"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	AccreditationNo string         `gorm:"size:64;not null" json:"accreditation_no"`
	ValidFrom       time.Time      `gorm:"not null" json:"valid_from"`
	ValidTo         time.Time      `gorm:"not null" json:"valid_to"`
	ContactEmail    string         `gorm:"size:255" json:"contact_email"`
	ContactPhone    string         `gorm:"size:32" json:"contact_phone,omitempty"`
	Address         string         `gorm:"size:512" json:"address,omitempty"`
	City            string         `gorm:"size:128" json:"city,omitempty"`
	State           string         `gorm:"size:128" json:"state,omitempty"`
	VerifiedStatus  string         `gorm:"size:16;not null;default:pending" json:"verified_status"`
	Documents       datatypes.JSON `json:"documents,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// IsExpired reports whether the accreditation window has lapsed.
func (i Institute) IsExpired(reference time.Time) bool {
	return i.ValidTo.Before(reference)
}
