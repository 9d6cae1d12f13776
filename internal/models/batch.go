package models

import "time"

// Batch lifecycle states.
const (
	BatchStatusUpcoming  = "upcoming"
	BatchStatusOngoing   = "ongoing"
	BatchStatusCompleted = "completed"
	BatchStatusCancelled = "cancelled"
)

// Batch is a scheduled offering of a course with a fixed seat capacity.
// Invariant: 0 <= SeatsBooked <= SeatsTotal.
type Batch struct {
	BatchID     string    `gorm:"column:batchid;primaryKey;size:64" json:"batchid"`
	CourseID    string    `gorm:"column:courseid;index;not null;size:64" json:"courseid"`
	BatchName   string    `gorm:"size:255;not null" json:"batch_name"`
	SeatsTotal  int       `gorm:"not null" json:"seats_total"`
	SeatsBooked int       `gorm:"not null;default:0" json:"seats_booked"`
	Trainer     string    `gorm:"size:255" json:"trainer,omitempty"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Location    string    `gorm:"size:255" json:"location,omitempty"`
	BatchStatus string    `gorm:"size:16;not null;default:upcoming" json:"batch_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasSeats reports whether at least one seat remains unbooked.
func (b Batch) HasSeats() bool {
	return b.SeatsBooked < b.SeatsTotal
}
