package blobstore

import (
	"context"
	"sort"

	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

type bookingStore struct {
	store *Store
}

func (s bookingStore) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.store.view(ctx, func(state State) error {
		for _, booking := range state.Bookings {
			if filter.StudID != "" && booking.StudID != filter.StudID {
				continue
			}
			if filter.BatchID != "" && booking.BatchID != filter.BatchID {
				continue
			}
			if filter.PaymentStatus != "" && booking.PaymentStatus != filter.PaymentStatus {
				continue
			}
			bookings = append(bookings, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}

func (s bookingStore) GetByID(ctx context.Context, bookID string) (models.Booking, error) {
	var booking models.Booking
	err := s.store.view(ctx, func(state State) error {
		for _, b := range state.Bookings {
			if b.BookID == bookID {
				booking = b
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return booking, err
}

// Reserve performs the duplicate check, the seat claim and the booking
// append inside one update, so a failed check leaves the blob unwritten.
func (s bookingStore) Reserve(ctx context.Context, booking *models.Booking) error {
	return s.store.update(ctx, func(state *State) error {
		batchIndex := -1
		for i, batch := range state.Batches {
			if batch.BatchID == booking.BatchID {
				batchIndex = i
				break
			}
		}
		if batchIndex < 0 {
			return repository.ErrNotFound
		}

		for _, existing := range state.Bookings {
			if existing.StudID == booking.StudID && existing.BatchID == booking.BatchID {
				return repository.ErrDuplicateBooking
			}
		}

		if !state.Batches[batchIndex].HasSeats() {
			return repository.ErrBatchFull
		}

		state.Batches[batchIndex].SeatsBooked++
		state.Bookings = append(state.Bookings, *booking)
		return nil
	})
}

func (s bookingStore) Update(ctx context.Context, booking *models.Booking) error {
	return s.store.update(ctx, func(state *State) error {
		for i, b := range state.Bookings {
			if b.BookID == booking.BookID {
				state.Bookings[i] = *booking
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type paymentStore struct {
	store *Store
}

func (s paymentStore) List(ctx context.Context, bookID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.store.view(ctx, func(state State) error {
		for _, payment := range state.Payments {
			if bookID != "" && payment.BookID != bookID {
				continue
			}
			payments = append(payments, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentDate.After(payments[j].PaymentDate)
	})
	return payments, nil
}

func (s paymentStore) Record(ctx context.Context, payment *models.Payment) error {
	return s.store.update(ctx, func(state *State) error {
		bookingIndex := -1
		for i, booking := range state.Bookings {
			if booking.BookID == payment.BookID {
				bookingIndex = i
				break
			}
		}
		if bookingIndex < 0 {
			return repository.ErrNotFound
		}

		state.Payments = append(state.Payments, *payment)
		if payment.Status == models.PaymentRecordSuccess {
			state.Bookings[bookingIndex].PaymentStatus = models.PaymentStatusCompleted
		}
		return nil
	})
}

type certificateStore struct {
	store *Store
}

func (s certificateStore) List(ctx context.Context, studID string) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := s.store.view(ctx, func(state State) error {
		for _, cert := range state.Certificates {
			if studID != "" && cert.StudID != studID {
				continue
			}
			certs = append(certs, cert)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(certs, func(i, j int) bool {
		return certs[i].IssueDate.After(certs[j].IssueDate)
	})
	return certs, nil
}

func (s certificateStore) GetByID(ctx context.Context, certID string) (models.Certificate, error) {
	var cert models.Certificate
	err := s.store.view(ctx, func(state State) error {
		for _, c := range state.Certificates {
			if c.CertID == certID {
				cert = c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return cert, err
}

func (s certificateStore) Create(ctx context.Context, cert *models.Certificate) error {
	return s.store.update(ctx, func(state *State) error {
		state.Certificates = append(state.Certificates, *cert)
		return nil
	})
}

func (s certificateStore) Update(ctx context.Context, cert *models.Certificate) error {
	return s.store.update(ctx, func(state *State) error {
		for i, c := range state.Certificates {
			if c.CertID == cert.CertID {
				state.Certificates[i] = *cert
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type enrollmentStore struct {
	store *Store
}

func (s enrollmentStore) List(ctx context.Context, filter repository.EnrollmentFilter) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.store.view(ctx, func(state State) error {
		for _, enrollment := range state.Enrollments {
			if filter.StudID != "" && enrollment.StudID != filter.StudID {
				continue
			}
			if filter.CourseID != "" && enrollment.CourseID != filter.CourseID {
				continue
			}
			enrollments = append(enrollments, enrollment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].CreatedAt.After(enrollments[j].CreatedAt)
	})
	return enrollments, nil
}

func (s enrollmentStore) GetByID(ctx context.Context, enrollID string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.store.view(ctx, func(state State) error {
		for _, e := range state.Enrollments {
			if e.EnrollID == enrollID {
				enrollment = e
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return enrollment, err
}

func (s enrollmentStore) GetByStudentCourse(ctx context.Context, studID, courseID string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.store.view(ctx, func(state State) error {
		for _, e := range state.Enrollments {
			if e.StudID == studID && e.CourseID == courseID {
				enrollment = e
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return enrollment, err
}

func (s enrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return s.store.update(ctx, func(state *State) error {
		state.Enrollments = append(state.Enrollments, *enrollment)
		return nil
	})
}

func (s enrollmentStore) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return s.store.update(ctx, func(state *State) error {
		for i, e := range state.Enrollments {
			if e.EnrollID == enrollment.EnrollID {
				state.Enrollments[i] = *enrollment
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
