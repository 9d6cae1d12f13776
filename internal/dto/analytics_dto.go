package dto

// AnalyticsResponse is the admin dashboard summary. Counts are computed on
// demand and may be served from cache.
type AnalyticsResponse struct {
	TotalInstitutes      int64   `json:"total_institutes"`
	VerifiedInstitutes   int64   `json:"verified_institutes"`
	PendingInstitutes    int64   `json:"pending_institutes"`
	TotalCourses         int64   `json:"total_courses"`
	TotalStudents        int64   `json:"total_students"`
	TotalBookings        int64   `json:"total_bookings"`
	CompletedBookings    int64   `json:"completed_bookings"`
	TotalRevenue         float64 `json:"total_revenue"`
	CertificatesIssued   int64   `json:"certificates_issued"`
	CertificatesUploaded int64   `json:"certificates_uploaded"`
}
