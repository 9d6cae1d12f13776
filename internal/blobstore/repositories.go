package blobstore

import "github.com/marinedeck/maritime-api/internal/repository"

// NewRepositories exposes the blob store through the same repository
// interfaces as the database backend.
func NewRepositories(store *Store) repository.Repositories {
	return repository.Repositories{
		Users:         userStore{store: store},
		Students:      studentStore{store: store},
		Institutes:    instituteStore{store: store},
		Courses:       courseStore{store: store},
		Batches:       batchStore{store: store},
		Bookings:      bookingStore{store: store},
		Payments:      paymentStore{store: store},
		Certificates:  certificateStore{store: store},
		Reactivations: reactivationStore{store: store},
		Lessons:       lessonStore{store: store},
		Enrollments:   enrollmentStore{store: store},
	}
}
