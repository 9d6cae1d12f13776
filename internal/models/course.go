package models

import "time"

// Course catalogue enumerations.
const (
	CourseTypeSTCW      = "STCW"
	CourseTypeRefresher = "Refresher"
	CourseTypeTechnical = "Technical"
	CourseTypeOther     = "Other"

	CourseModeOffline = "offline"
	CourseModeOnline  = "online"
	CourseModeHybrid  = "hybrid"

	CourseStatusActive   = "active"
	CourseStatusInactive = "inactive"
	CourseStatusArchived = "archived"
)

// Course is a training offering published by an institute. Scheduling and
// seat capacity live on Batch; online content lives on Lesson.
type Course struct {
	CourseID         string    `gorm:"column:courseid;primaryKey;size:64" json:"courseid"`
	InstID           string    `gorm:"column:instid;index;not null;size:64" json:"instid"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Type             string    `gorm:"size:32;not null" json:"type"`
	Duration         string    `gorm:"size:64" json:"duration"`
	Mode             string    `gorm:"size:16;not null" json:"mode"`
	Fees             float64   `gorm:"not null" json:"fees"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	ValidityMonths   int       `json:"validity_months,omitempty"`
	AccreditationRef string    `gorm:"size:64" json:"accreditation_ref,omitempty"`
	Status           string    `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
