package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// EnrollmentCreateRequest describes the payload for enrolling in a course's
// online content.
type EnrollmentCreateRequest struct {
	CourseID string `json:"courseid" validate:"required"`
}

// LessonCreateRequest describes the payload for adding a lesson to a course.
type LessonCreateRequest struct {
	Title           string `json:"title" validate:"required,min=3"`
	Description     string `json:"description" validate:"omitempty"`
	OrderIndex      int    `json:"order_index" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	ContentType     string `json:"content_type" validate:"omitempty,oneof=video document quiz"`
	ContentURL      string `json:"content_url" validate:"omitempty,url"`
}

// LessonResponse is the serialized lesson returned to API clients.
type LessonResponse struct {
	LessonID        string    `json:"lessonid"`
	CourseID        string    `json:"courseid"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	OrderIndex      int       `json:"order_index"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	ContentType     string    `json:"content_type"`
	ContentURL      string    `json:"content_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// EnrollmentResponse is the serialized enrollment returned to API clients.
type EnrollmentResponse struct {
	EnrollID         string    `json:"enrollid"`
	StudID           string    `json:"studid"`
	CourseID         string    `json:"courseid"`
	CompletedLessons []string  `json:"completed_lessons"`
	Progress         int       `json:"progress"`
	LastAccessed     time.Time `json:"last_accessed"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewLessonResponse converts a model into a DTO.
func NewLessonResponse(model models.Lesson) LessonResponse {
	return LessonResponse{
		LessonID:        model.LessonID,
		CourseID:        model.CourseID,
		Title:           model.Title,
		Description:     model.Description,
		OrderIndex:      model.OrderIndex,
		DurationMinutes: model.DurationMinutes,
		ContentType:     model.ContentType,
		ContentURL:      model.ContentURL,
		CreatedAt:       model.CreatedAt,
	}
}

// NewLessonResponseSlice converts a slice of models into DTOs.
func NewLessonResponseSlice(lessons []models.Lesson) []LessonResponse {
	responses := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, NewLessonResponse(lesson))
	}
	return responses
}

// NewEnrollmentResponse converts a model into a DTO.
func NewEnrollmentResponse(model models.Enrollment) EnrollmentResponse {
	completed := model.CompletedLessonIDs()
	if completed == nil {
		completed = []string{}
	}
	return EnrollmentResponse{
		EnrollID:         model.EnrollID,
		StudID:           model.StudID,
		CourseID:         model.CourseID,
		CompletedLessons: completed,
		Progress:         model.Progress,
		LastAccessed:     model.LastAccessed,
		CreatedAt:        model.CreatedAt,
	}
}

// NewEnrollmentResponseSlice converts a slice of models into DTOs.
func NewEnrollmentResponseSlice(enrollments []models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}
	return responses
}
