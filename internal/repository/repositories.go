package repository

import "gorm.io/gorm"

// Repositories bundles one implementation of every repository interface so
// storage backends stay interchangeable behind a single wiring point.
type Repositories struct {
	Users         UserRepository
	Students      StudentRepository
	Institutes    InstituteRepository
	Courses       CourseRepository
	Batches       BatchRepository
	Bookings      BookingRepository
	Payments      PaymentRepository
	Certificates  CertificateRepository
	Reactivations ReactivationRepository
	Lessons       LessonRepository
	Enrollments   EnrollmentRepository
}

// NewGorm builds the database-backed repository set.
func NewGorm(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepository(db),
		Students:      NewStudentRepository(db),
		Institutes:    NewInstituteRepository(db),
		Courses:       NewCourseRepository(db),
		Batches:       NewBatchRepository(db),
		Bookings:      NewBookingRepository(db),
		Payments:      NewPaymentRepository(db),
		Certificates:  NewCertificateRepository(db),
		Reactivations: NewReactivationRepository(db),
		Lessons:       NewLessonRepository(db),
		Enrollments:   NewEnrollmentRepository(db),
	}
}
