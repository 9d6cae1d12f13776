package blobstore

import (
	"context"
	"strings"

	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

type userStore struct {
	store *Store
}

func (s userStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.view(ctx, func(state State) error {
		users = append(users, state.Users...)
		return nil
	})
	return users, err
}

func (s userStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.store.view(ctx, func(state State) error {
		for _, u := range state.Users {
			if u.UserID == userID {
				user = u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return user, err
}

func (s userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	err := s.store.view(ctx, func(state State) error {
		for _, u := range state.Users {
			if strings.EqualFold(u.Email, email) {
				user = u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return user, err
}

func (s userStore) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return s.store.update(ctx, func(state *State) error {
		for _, u := range state.Users {
			if strings.EqualFold(u.Email, user.Email) {
				return repository.ErrDuplicateEmail
			}
		}
		state.Users = append(state.Users, *user)
		return nil
	})
}

func (s userStore) Update(ctx context.Context, user *models.User) error {
	return s.store.update(ctx, func(state *State) error {
		for i, u := range state.Users {
			if u.UserID == user.UserID {
				state.Users[i] = *user
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type studentStore struct {
	store *Store
}

func (s studentStore) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := s.store.view(ctx, func(state State) error {
		students = append(students, state.Students...)
		return nil
	})
	return students, err
}

func (s studentStore) GetByID(ctx context.Context, studID string) (models.Student, error) {
	var student models.Student
	err := s.store.view(ctx, func(state State) error {
		for _, st := range state.Students {
			if st.StudID == studID {
				student = st
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return student, err
}

func (s studentStore) GetByUserID(ctx context.Context, userID string) (models.Student, error) {
	var student models.Student
	err := s.store.view(ctx, func(state State) error {
		for _, st := range state.Students {
			if st.UserID == userID {
				student = st
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return student, err
}

func (s studentStore) Create(ctx context.Context, student *models.Student) error {
	return s.store.update(ctx, func(state *State) error {
		state.Students = append(state.Students, *student)
		return nil
	})
}

func (s studentStore) Update(ctx context.Context, student *models.Student) error {
	return s.store.update(ctx, func(state *State) error {
		for i, st := range state.Students {
			if st.StudID == student.StudID {
				state.Students[i] = *student
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
