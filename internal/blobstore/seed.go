package blobstore

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// demoPasswordHash is a bcrypt digest used by the seeded demo accounts.
const demoPasswordHash = "$2a$10$vI8aWBnW3fID.ZQ4/zo1G.q1lRps.9cGLcZEiGDMVr5yUP1KUOYTa"

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// SeedState is the built-in demo dataset used when no blob exists yet or the
// stored one cannot be decoded. Identifiers are fixed so demo flows and
// tests are reproducible.
func SeedState() State {
	created := day("2024-01-15")

	return State{
		Users: []models.User{
			{
				UserID: "user-admin-1", Name: "Platform Admin",
				Email: "admin@maritime.example", Role: models.RoleAdmin,
				PasswordHash: demoPasswordHash, CreatedAt: created, UpdatedAt: created,
			},
			{
				UserID: "user-inst-1", Name: "Oceanic Maritime Academy",
				Email: "contact@oceanic.example", Phone: "+91-22-5550101",
				Role: models.RoleInstitute, PasswordHash: demoPasswordHash,
				CreatedAt: created, UpdatedAt: created,
			},
			{
				UserID: "user-stud-1", Name: "Arjun Nair",
				Email: "arjun.nair@sea.example", Phone: "+91-98-5550199",
				Role: models.RoleStudent, PasswordHash: demoPasswordHash,
				CreatedAt: created, UpdatedAt: created,
			},
		},
		Students: []models.Student{
			{
				StudID: "stud-1", UserID: "user-stud-1",
				DGShippingID: "DGS-IND-442190", Rank: "Second Officer",
				COCNumber: "COC-88213", Nationality: "Indian", CreatedAt: created,
			},
		},
		Institutes: []models.Institute{
			{
				InstID: "inst-1", UserID: "user-inst-1",
				Name: "Oceanic Maritime Academy", AccreditationNo: "DGS-2024-001",
				ValidFrom: day("2024-01-01"), ValidTo: day("2026-12-31"),
				ContactEmail: "contact@oceanic.example", City: "Mumbai", State: "Maharashtra",
				VerifiedStatus: models.VerifiedStatusVerified, CreatedAt: created,
			},
		},
		Courses: []models.Course{
			{
				CourseID: "course-1", InstID: "inst-1",
				Title: "STCW Basic Safety Training", Type: models.CourseTypeSTCW,
				Duration: "5 days", Mode: models.CourseModeOffline, Fees: 15000,
				Description: "Mandatory basic safety modules: PST, FPFF, EFA and PSSR.",
				ValidityMonths: 60, AccreditationRef: "DGS-2024-001",
				Status: models.CourseStatusActive, CreatedAt: created, UpdatedAt: created,
			},
			{
				CourseID: "course-2", InstID: "inst-1",
				Title: "Radar Observer Refresher", Type: models.CourseTypeRefresher,
				Duration: "3 days", Mode: models.CourseModeHybrid, Fees: 9500,
				ValidityMonths: 36, Status: models.CourseStatusActive,
				CreatedAt: created, UpdatedAt: created,
			},
		},
		Batches: []models.Batch{
			{
				BatchID: "batch-1", CourseID: "course-1", BatchName: "BST March A",
				SeatsTotal: 30, SeatsBooked: 0, Trainer: "Capt. R. Menon",
				StartDate: day("2024-03-04"), EndDate: day("2024-03-08"),
				Location: "Mumbai", BatchStatus: models.BatchStatusUpcoming, CreatedAt: created,
			},
			{
				BatchID: "batch-2", CourseID: "course-2", BatchName: "ROC April",
				SeatsTotal: 20, SeatsBooked: 0,
				StartDate: day("2024-04-10"), EndDate: day("2024-04-12"),
				Location: "Mumbai", BatchStatus: models.BatchStatusUpcoming, CreatedAt: created,
			},
		},
		Bookings:      []models.Booking{},
		Certificates:  []models.Certificate{},
		Payments:      []models.Payment{},
		Reactivations: []models.ReactivationRequest{},
		Lessons: []models.Lesson{
			{
				LessonID: "lesson-1", CourseID: "course-2",
				Title: "Radar fundamentals", OrderIndex: 1,
				DurationMinutes: 45, ContentType: "video", CreatedAt: created,
			},
			{
				LessonID: "lesson-2", CourseID: "course-2",
				Title: "Plotting exercises", OrderIndex: 2,
				DurationMinutes: 60, ContentType: "video", CreatedAt: created,
			},
		},
		Enrollments: []models.Enrollment{},
	}
}
