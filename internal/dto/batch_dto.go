package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// BatchCreateRequest describes the payload for scheduling a batch.
type BatchCreateRequest struct {
	BatchName  string `json:"batch_name" validate:"required,min=3"`
	SeatsTotal int    `json:"seats_total" validate:"required,gt=0"`
	Trainer    string `json:"trainer" validate:"omitempty"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location   string `json:"location" validate:"omitempty"`
}

// BatchUpdateRequest describes a partial batch update.
type BatchUpdateRequest struct {
	BatchName   *string `json:"batch_name" validate:"omitempty,min=3"`
	Trainer     *string `json:"trainer" validate:"omitempty"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Location    *string `json:"location" validate:"omitempty"`
	BatchStatus *string `json:"batch_status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// BatchResponse is the serialized batch returned to API clients.
type BatchResponse struct {
	BatchID        string    `json:"batchid"`
	CourseID       string    `json:"courseid"`
	BatchName      string    `json:"batch_name"`
	SeatsTotal     int       `json:"seats_total"`
	SeatsBooked    int       `json:"seats_booked"`
	SeatsAvailable int       `json:"seats_available"`
	Trainer        string    `json:"trainer,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Location       string    `json:"location,omitempty"`
	BatchStatus    string    `json:"batch_status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBatchResponse converts a model into a DTO.
func NewBatchResponse(model models.Batch) BatchResponse {
	return BatchResponse{
		BatchID:        model.BatchID,
		CourseID:       model.CourseID,
		BatchName:      model.BatchName,
		SeatsTotal:     model.SeatsTotal,
		SeatsBooked:    model.SeatsBooked,
		SeatsAvailable: model.SeatsTotal - model.SeatsBooked,
		Trainer:        model.Trainer,
		StartDate:      model.StartDate,
		EndDate:        model.EndDate,
		Location:       model.Location,
		BatchStatus:    model.BatchStatus,
		CreatedAt:      model.CreatedAt,
	}
}

// NewBatchResponseSlice converts a slice of models into DTOs.
func NewBatchResponseSlice(batches []models.Batch) []BatchResponse {
	responses := make([]BatchResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, NewBatchResponse(batch))
	}
	return responses
}
