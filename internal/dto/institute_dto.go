package dto

import (
	"encoding/json"
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// InstituteVerifyRequest is the admin decision on a pending institute.
type InstituteVerifyRequest struct {
	VerifiedStatus string `json:"verified_status" validate:"required,oneof=verified rejected"`
}

// ReactivationCreateRequest describes renewed accreditation details
// submitted by an expired institute.
type ReactivationCreateRequest struct {
	NewAccreditationNo string          `json:"new_accreditation_no" validate:"required"`
	NewValidFrom       string          `json:"new_valid_from" validate:"required,datetime=2006-01-02"`
	NewValidTo         string          `json:"new_valid_to" validate:"required,datetime=2006-01-02"`
	Documents          json.RawMessage `json:"documents" validate:"omitempty"`
}

// ReactivationReviewRequest is the admin decision on a pending request.
type ReactivationReviewRequest struct {
	Status        string `json:"status" validate:"required,oneof=approved rejected"`
	ReviewerNotes string `json:"reviewer_notes" validate:"omitempty,max=1024"`
}

// InstituteResponse is the serialized institute returned to API clients.
type InstituteResponse struct {
	InstID          string          `json:"instid"`
	UserID          string          `json:"userid"`
	Name            string          `json:"name"`
	AccreditationNo string          `json:"accreditation_no"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidTo         time.Time       `json:"valid_to"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	VerifiedStatus  string          `json:"verified_status"`
	Expired         bool            `json:"expired"`
	Documents       json.RawMessage `json:"documents,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReactivationResponse is the serialized reactivation request.
type ReactivationResponse struct {
	RequestID          string          `json:"request_id"`
	InstID             string          `json:"instid"`
	NewAccreditationNo string          `json:"new_accreditation_no"`
	NewValidFrom       time.Time       `json:"new_valid_from"`
	NewValidTo         time.Time       `json:"new_valid_to"`
	Documents          json.RawMessage `json:"documents,omitempty"`
	Status             string          `json:"status"`
	SubmittedAt        time.Time       `json:"submitted_at"`
	ReviewedAt         *time.Time      `json:"reviewed_at,omitempty"`
	ReviewerNotes      string          `json:"reviewer_notes,omitempty"`
}

// NewInstituteResponse converts a model into a DTO; expiry is evaluated
// against the supplied reference time.
func NewInstituteResponse(model models.Institute, reference time.Time) InstituteResponse {
	return InstituteResponse{
		InstID:          model.InstID,
		UserID:          model.UserID,
		Name:            model.Name,
		AccreditationNo: model.AccreditationNo,
		ValidFrom:       model.ValidFrom,
		ValidTo:         model.ValidTo,
		ContactEmail:    model.ContactEmail,
		ContactPhone:    model.ContactPhone,
		Address:         model.Address,
		City:            model.City,
		State:           model.State,
		VerifiedStatus:  model.VerifiedStatus,
		Expired:         model.IsExpired(reference),
		Documents:       json.RawMessage(model.Documents),
		CreatedAt:       model.CreatedAt,
	}
}

// NewInstituteResponseSlice converts a slice of models into DTOs.
func NewInstituteResponseSlice(institutes []models.Institute, reference time.Time) []InstituteResponse {
	responses := make([]InstituteResponse, 0, len(institutes))
	for _, institute := range institutes {
		responses = append(responses, NewInstituteResponse(institute, reference))
	}
	return responses
}

// NewReactivationResponse converts a model into a DTO.
func NewReactivationResponse(model models.ReactivationRequest) ReactivationResponse {
	return ReactivationResponse{
		RequestID:          model.RequestID,
		InstID:             model.InstID,
		NewAccreditationNo: model.NewAccreditationNo,
		NewValidFrom:       model.NewValidFrom,
		NewValidTo:         model.NewValidTo,
		Documents:          json.RawMessage(model.Documents),
		Status:             model.Status,
		SubmittedAt:        model.SubmittedAt,
		ReviewedAt:         model.ReviewedAt,
		ReviewerNotes:      model.ReviewerNotes,
	}
}

// NewReactivationResponseSlice converts a slice of models into DTOs.
func NewReactivationResponseSlice(requests []models.ReactivationRequest) []ReactivationResponse {
	responses := make([]ReactivationResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewReactivationResponse(request))
	}
	return responses
}
