package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// BookingCreateRequest describes the payload for reserving a seat.
type BookingCreateRequest struct {
	BatchID string  `json:"batchid" validate:"required"`
	Amount  float64 `json:"amount" validate:"gte=0"`
}

// BookingStatusUpdateRequest describes an institute's status update on a
// booking. All fields are optional; at least one must be set.
type BookingStatusUpdateRequest struct {
	AttendanceStatus *string `json:"attendance_status" validate:"omitempty,oneof=not_started attending completed absent"`
	CompletionStatus *string `json:"completion_status" validate:"omitempty,oneof=incomplete completed failed"`
}

// BookingResponse is the serialized booking returned to API clients.
type BookingResponse struct {
	BookID             string    `json:"bookid"`
	StudID             string    `json:"studid"`
	BatchID            string    `json:"batchid"`
	ConfirmationNumber string    `json:"confirmation_number"`
	Amount             float64   `json:"amount"`
	PaymentStatus      string    `json:"payment_status"`
	AttendanceStatus   string    `json:"attendance_status"`
	CompletionStatus   string    `json:"completion_status"`
	BookingDate        time.Time `json:"booking_date"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewBookingResponse converts a model into a DTO.
func NewBookingResponse(model models.Booking) BookingResponse {
	return BookingResponse{
		BookID:             model.BookID,
		StudID:             model.StudID,
		BatchID:            model.BatchID,
		ConfirmationNumber: model.ConfirmationNumber,
		Amount:             model.Amount,
		PaymentStatus:      model.PaymentStatus,
		AttendanceStatus:   model.AttendanceStatus,
		CompletionStatus:   model.CompletionStatus,
		BookingDate:        model.BookingDate,
		CreatedAt:          model.CreatedAt,
	}
}

// NewBookingResponseSlice converts a slice of models into DTOs.
func NewBookingResponseSlice(bookings []models.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, NewBookingResponse(booking))
	}
	return responses
}
