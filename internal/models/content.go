package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Lesson is an ordered content unit of an online or hybrid course.
type Lesson struct {
	LessonID        string    `gorm:"column:lessonid;primaryKey;size:64" json:"lessonid"`
	CourseID        string    `gorm:"column:courseid;index;not null;size:64" json:"courseid"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	OrderIndex      int       `gorm:"not null" json:"order_index"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	ContentType     string    `gorm:"size:16;not null;default:video" json:"content_type"`
	ContentURL      string    `gorm:"size:512" json:"content_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Enrollment tracks a student's progress through a course's lessons.
// Progress is always round(completed/total*100).
type Enrollment struct {
	EnrollID         string         `gorm:"column:enrollid;primaryKey;size:64" json:"enrollid"`
	StudID           string         `gorm:"column:studid;not null;size:64;uniqueIndex:idx_enrollments_stud_course" json:"studid"`
	CourseID         string         `gorm:"column:courseid;not null;size:64;uniqueIndex:idx_enrollments_stud_course" json:"courseid"`
	CompletedLessons datatypes.JSON `json:"completed_lessons"`
	Progress         int            `gorm:"not null;default:0" json:"progress"`
	LastAccessed     time.Time      `json:"last_accessed"`
	CreatedAt        time.Time      `json:"created_at"`
}

// CompletedLessonIDs decodes the completed-lessons column. A nil or invalid
// column decodes as empty.
func (e Enrollment) CompletedLessonIDs() []string {
	if len(e.CompletedLessons) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(e.CompletedLessons, &ids); err != nil {
		return nil
	}
	return ids
}

// SetCompletedLessonIDs encodes the completed-lessons column.
func (e *Enrollment) SetCompletedLessonIDs(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	e.CompletedLessons = raw
	return nil
}
