package blobstore

import (
	"context"
	"sort"

	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

type courseStore struct {
	store *Store
}

func (s courseStore) List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	var courses []models.Course
	err := s.store.view(ctx, func(state State) error {
		cityInstitutes := map[string]bool{}
		if filter.City != "" {
			for _, inst := range state.Institutes {
				if inst.City == filter.City {
					cityInstitutes[inst.InstID] = true
				}
			}
		}

		for _, course := range state.Courses {
			if filter.Status != "" && course.Status != filter.Status {
				continue
			}
			if filter.InstID != "" && course.InstID != filter.InstID {
				continue
			}
			if filter.Type != "" && course.Type != filter.Type {
				continue
			}
			if filter.Mode != "" && course.Mode != filter.Mode {
				continue
			}
			if filter.City != "" && !cityInstitutes[course.InstID] {
				continue
			}
			courses = append(courses, course)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

func (s courseStore) GetByID(ctx context.Context, courseID string) (models.Course, error) {
	var course models.Course
	err := s.store.view(ctx, func(state State) error {
		for _, c := range state.Courses {
			if c.CourseID == courseID {
				course = c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return course, err
}

func (s courseStore) Create(ctx context.Context, course *models.Course) error {
	return s.store.update(ctx, func(state *State) error {
		state.Courses = append(state.Courses, *course)
		return nil
	})
}

func (s courseStore) Update(ctx context.Context, course *models.Course) error {
	return s.store.update(ctx, func(state *State) error {
		for i, c := range state.Courses {
			if c.CourseID == course.CourseID {
				state.Courses[i] = *course
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (s courseStore) Delete(ctx context.Context, courseID string) error {
	return s.store.update(ctx, func(state *State) error {
		index := -1
		for i, c := range state.Courses {
			if c.CourseID == courseID {
				index = i
				break
			}
		}
		if index < 0 {
			return repository.ErrNotFound
		}
		state.Courses = append(state.Courses[:index], state.Courses[index+1:]...)

		kept := state.Lessons[:0]
		for _, lesson := range state.Lessons {
			if lesson.CourseID != courseID {
				kept = append(kept, lesson)
			}
		}
		state.Lessons = kept

		enrollments := state.Enrollments[:0]
		for _, enrollment := range state.Enrollments {
			if enrollment.CourseID != courseID {
				enrollments = append(enrollments, enrollment)
			}
		}
		state.Enrollments = enrollments
		return nil
	})
}

type batchStore struct {
	store *Store
}

func (s batchStore) List(ctx context.Context, courseID string) ([]models.Batch, error) {
	var batches []models.Batch
	err := s.store.view(ctx, func(state State) error {
		for _, batch := range state.Batches {
			if courseID != "" && batch.CourseID != courseID {
				continue
			}
			batches = append(batches, batch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].StartDate.Before(batches[j].StartDate)
	})
	return batches, nil
}

func (s batchStore) GetByID(ctx context.Context, batchID string) (models.Batch, error) {
	var batch models.Batch
	err := s.store.view(ctx, func(state State) error {
		for _, b := range state.Batches {
			if b.BatchID == batchID {
				batch = b
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return batch, err
}

func (s batchStore) Create(ctx context.Context, batch *models.Batch) error {
	return s.store.update(ctx, func(state *State) error {
		state.Batches = append(state.Batches, *batch)
		return nil
	})
}

func (s batchStore) Update(ctx context.Context, batch *models.Batch) error {
	return s.store.update(ctx, func(state *State) error {
		for i, b := range state.Batches {
			if b.BatchID == batch.BatchID {
				state.Batches[i] = *batch
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type lessonStore struct {
	store *Store
}

func (s lessonStore) ListByCourse(ctx context.Context, courseID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.store.view(ctx, func(state State) error {
		for _, lesson := range state.Lessons {
			if lesson.CourseID == courseID {
				lessons = append(lessons, lesson)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].OrderIndex < lessons[j].OrderIndex
	})
	return lessons, nil
}

func (s lessonStore) GetByID(ctx context.Context, lessonID string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.store.view(ctx, func(state State) error {
		for _, l := range state.Lessons {
			if l.LessonID == lessonID {
				lesson = l
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return lesson, err
}

func (s lessonStore) Create(ctx context.Context, lesson *models.Lesson) error {
	return s.store.update(ctx, func(state *State) error {
		state.Lessons = append(state.Lessons, *lesson)
		return nil
	})
}

func (s lessonStore) Update(ctx context.Context, lesson *models.Lesson) error {
	return s.store.update(ctx, func(state *State) error {
		for i, l := range state.Lessons {
			if l.LessonID == lesson.LessonID {
				state.Lessons[i] = *lesson
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (s lessonStore) Delete(ctx context.Context, lessonID string) error {
	return s.store.update(ctx, func(state *State) error {
		for i, l := range state.Lessons {
			if l.LessonID == lessonID {
				state.Lessons = append(state.Lessons[:i], state.Lessons[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
