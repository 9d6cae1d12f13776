package models

import "time"

// Booking payment states.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Booking attendance states.
const (
	AttendanceNotStarted = "not_started"
	AttendanceAttending  = "attending"
	AttendanceCompleted  = "completed"
	AttendanceAbsent     = "absent"
)

// Booking completion states.
const (
	CompletionIncomplete = "incomplete"
	CompletionCompleted  = "completed"
	CompletionFailed     = "failed"
)

// Booking is a student's seat reservation against a batch. A student holds
// at most one booking per batch.
type Booking struct {
	BookID             string    `gorm:"column:bookid;primaryKey;size:64" json:"bookid"`
	StudID             string    `gorm:"column:studid;not null;size:64;uniqueIndex:idx_bookings_stud_batch" json:"studid"`
	BatchID            string    `gorm:"column:batchid;not null;size:64;uniqueIndex:idx_bookings_stud_batch" json:"batchid"`
	ConfirmationNumber string    `gorm:"size:64" json:"confirmation_number"`
	Amount             float64   `gorm:"not null" json:"amount"`
	PaymentStatus      string    `gorm:"size:16;not null;default:pending" json:"payment_status"`
	AttendanceStatus   string    `gorm:"size:16;not null;default:not_started" json:"attendance_status"`
	CompletionStatus   string    `gorm:"size:16;not null;default:incomplete" json:"completion_status"`
	BookingDate        time.Time `gorm:"not null" json:"booking_date"`
	CreatedAt          time.Time `json:"created_at"`
}
