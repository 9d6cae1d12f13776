package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// CourseCreateRequest describes the payload for publishing a course.
type CourseCreateRequest struct {
	Title            string  `json:"title" validate:"required,min=3"`
	Type             string  `json:"type" validate:"required,oneof=STCW Refresher Technical Other"`
	Duration         string  `json:"duration" validate:"omitempty"`
	Mode             string  `json:"mode" validate:"required,oneof=offline online hybrid"`
	Fees             float64 `json:"fees" validate:"gte=0"`
	Description      string  `json:"description" validate:"omitempty"`
	ValidityMonths   int     `json:"validity_months" validate:"omitempty,gte=0"`
	AccreditationRef string  `json:"accreditation_ref" validate:"omitempty"`
}

// CourseUpdateRequest describes a partial course update.
type CourseUpdateRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=3"`
	Type             *string  `json:"type" validate:"omitempty,oneof=STCW Refresher Technical Other"`
	Duration         *string  `json:"duration" validate:"omitempty"`
	Mode             *string  `json:"mode" validate:"omitempty,oneof=offline online hybrid"`
	Fees             *float64 `json:"fees" validate:"omitempty,gte=0"`
	Description      *string  `json:"description" validate:"omitempty"`
	ValidityMonths   *int     `json:"validity_months" validate:"omitempty,gte=0"`
	AccreditationRef *string  `json:"accreditation_ref" validate:"omitempty"`
	Status           *string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// CourseResponse is the serialized course returned to API clients.
type CourseResponse struct {
	CourseID         string    `json:"courseid"`
	InstID           string    `json:"instid"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	Duration         string    `json:"duration"`
	Mode             string    `json:"mode"`
	Fees             float64   `json:"fees"`
	Description      string    `json:"description,omitempty"`
	ValidityMonths   int       `json:"validity_months,omitempty"`
	AccreditationRef string    `json:"accreditation_ref,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		CourseID:         model.CourseID,
		InstID:           model.InstID,
		Title:            model.Title,
		Type:             model.Type,
		Duration:         model.Duration,
		Mode:             model.Mode,
		Fees:             model.Fees,
		Description:      model.Description,
		ValidityMonths:   model.ValidityMonths,
		AccreditationRef: model.AccreditationRef,
		Status:           model.Status,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
