package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// Enrollment service errors.
var (
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNotEnrolled indicates the student has no enrollment for the course.
	ErrNotEnrolled = errors.New("not enrolled in course")
	// ErrCourseNotOnline indicates lesson tracking was requested for a
	// course without online content.
	ErrCourseNotOnline = errors.New("course has no online content")
	// ErrLessonNotInCourse indicates the lesson belongs to another course.
	ErrLessonNotInCourse = errors.New("lesson does not belong to course")
)

// EnrollmentService exposes lesson management and learning progress use cases.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID string, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	GetProgress(ctx context.Context, userID, courseID string) (dto.EnrollmentResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.EnrollmentResponse, error)
	MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (dto.EnrollmentResponse, error)
	ListLessons(ctx context.Context, courseID string) ([]dto.LessonResponse, error)
	CreateLesson(ctx context.Context, userID, courseID string, payload dto.LessonCreateRequest) (dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, userID, lessonID string) error
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	lessons     repository.LessonRepository
	courses     repository.CourseRepository
	students    repository.StudentRepository
	institutes  repository.InstituteRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService builds a new enrollment service.
func NewEnrollmentService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: repos.Enrollments,
		lessons:     repos.Lessons,
		courses:     repos.Courses,
		students:    repos.Students,
		institutes:  repos.Institutes,
		validator:   validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
		now:         time.Now,
	}
}

// Enroll registers the student on the course's online content. Enrolling
// twice returns the existing enrollment unchanged.
func (s *enrollmentService) Enroll(ctx context.Context, userID string, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrCourseNotFound
		}
		return dto.EnrollmentResponse{}, err
	}
	if course.Mode == models.CourseModeOffline {
		return dto.EnrollmentResponse{}, ErrCourseNotOnline
	}

	existing, err := s.enrollments.GetByStudentCourse(ctx, student.StudID, course.CourseID)
	if err == nil {
		return dto.NewEnrollmentResponse(existing), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.Enrollment{
		EnrollID:     models.NewID("enroll"),
		StudID:       student.StudID,
		CourseID:     course.CourseID,
		LastAccessed: s.now(),
	}
	if err := enrollment.SetCompletedLessonIDs(nil); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Str("enrollid", enrollment.EnrollID).Str("courseid", course.CourseID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) GetProgress(ctx context.Context, userID, courseID string) (dto.EnrollmentResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	enrollment, err := s.enrollments.GetByStudentCourse(ctx, student.StudID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrNotEnrolled
		}
		return dto.EnrollmentResponse{}, err
	}

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) ListMine(ctx context.Context, userID string) ([]dto.EnrollmentResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	enrollments, err := s.enrollments.List(ctx, repository.EnrollmentFilter{StudID: student.StudID})
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

// MarkLessonComplete records the lesson as done. Completing the same lesson
// twice leaves progress unchanged.
func (s *enrollmentService) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) (dto.EnrollmentResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	enrollment, err := s.enrollments.GetByStudentCourse(ctx, student.StudID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrNotEnrolled
		}
		return dto.EnrollmentResponse{}, err
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EnrollmentResponse{}, ErrLessonNotFound
		}
		return dto.EnrollmentResponse{}, err
	}
	if lesson.CourseID != courseID {
		return dto.EnrollmentResponse{}, ErrLessonNotInCourse
	}

	completed := enrollment.CompletedLessonIDs()
	already := false
	for _, id := range completed {
		if id == lesson.LessonID {
			already = true
			break
		}
	}
	if !already {
		completed = append(completed, lesson.LessonID)
	}

	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if err := enrollment.SetCompletedLessonIDs(completed); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	enrollment.Progress = progressPercent(len(completed), len(lessons))
	enrollment.LastAccessed = s.now()

	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if !already {
		s.logger.Info().
			Str("enrollid", enrollment.EnrollID).
			Str("lessonid", lesson.LessonID).
			Int("progress", enrollment.Progress).
			Msg("lesson completed")
	}

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) ListLessons(ctx context.Context, courseID string) ([]dto.LessonResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

func (s *enrollmentService) CreateLesson(ctx context.Context, userID, courseID string, payload dto.LessonCreateRequest) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	course, err := s.ownedCourse(ctx, userID, courseID)
	if err != nil {
		return dto.LessonResponse{}, err
	}
	if course.Mode == models.CourseModeOffline {
		return dto.LessonResponse{}, ErrCourseNotOnline
	}

	contentType := payload.ContentType
	if contentType == "" {
		contentType = "video"
	}

	lesson := models.Lesson{
		LessonID:        models.NewID("lesson"),
		CourseID:        course.CourseID,
		Title:           payload.Title,
		Description:     payload.Description,
		OrderIndex:      payload.OrderIndex,
		DurationMinutes: payload.DurationMinutes,
		ContentType:     contentType,
		ContentURL:      payload.ContentURL,
	}
	if err := s.lessons.Create(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	s.logger.Info().Str("lessonid", lesson.LessonID).Str("courseid", course.CourseID).Msg("lesson created")

	return dto.NewLessonResponse(lesson), nil
}

func (s *enrollmentService) DeleteLesson(ctx context.Context, userID, lessonID string) error {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	if _, err := s.ownedCourse(ctx, userID, lesson.CourseID); err != nil {
		return err
	}

	if err := s.lessons.Delete(ctx, lesson.LessonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	s.logger.Info().Str("lessonid", lesson.LessonID).Msg("lesson deleted")
	return nil
}

// progressPercent rounds completed/total to a whole percentage. A course
// without lessons reports zero.
func progressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *enrollmentService) ownedCourse(ctx context.Context, userID, courseID string) (models.Course, error) {
	institute, err := s.institutes.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Course{}, ErrInstituteNotFound
		}
		return models.Course{}, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	if course.InstID != institute.InstID {
		return models.Course{}, ErrNotCourseOwner
	}

	return course, nil
}
