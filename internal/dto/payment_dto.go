package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// PaymentCreateRequest describes the payload for recording a payment
// against a booking.
type PaymentCreateRequest struct {
	BookID string  `json:"bookid" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=wallet card upi netbanking cash"`
	TxnRef string  `json:"txn_ref" validate:"omitempty"`
	Status string  `json:"status" validate:"omitempty,oneof=pending success failed refunded"`
}

// PaymentResponse is the serialized payment returned to API clients.
type PaymentResponse struct {
	PayID       string    `json:"payid"`
	BookID      string    `json:"bookid"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	TxnRef      string    `json:"txn_ref,omitempty"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPaymentResponse converts a model into a DTO.
func NewPaymentResponse(model models.Payment) PaymentResponse {
	return PaymentResponse{
		PayID:       model.PayID,
		BookID:      model.BookID,
		Amount:      model.Amount,
		Method:      model.Method,
		TxnRef:      model.TxnRef,
		Status:      model.Status,
		PaymentDate: model.PaymentDate,
		CreatedAt:   model.CreatedAt,
	}
}

// NewPaymentResponseSlice converts a slice of models into DTOs.
func NewPaymentResponseSlice(payments []models.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, NewPaymentResponse(payment))
	}
	return responses
}
