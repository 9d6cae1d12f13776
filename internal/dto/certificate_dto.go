package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

// CertificateIssueRequest describes the payload for issuing a certificate.
// The certificate file itself, when present, arrives as a multipart part
// alongside this payload.
type CertificateIssueRequest struct {
	StudID   string `json:"studid" form:"studid" validate:"required"`
	CourseID string `json:"courseid" form:"courseid" validate:"required"`
	BatchID  string `json:"batchid" form:"batchid" validate:"required"`
}

// CertificateResponse is the serialized certificate returned to API clients.
type CertificateResponse struct {
	CertID               string     `json:"certid"`
	StudID               string     `json:"studid"`
	CourseID             string     `json:"courseid"`
	BatchID              string     `json:"batchid"`
	CertNumber           string     `json:"cert_number"`
	IssueDate            time.Time  `json:"issue_date"`
	ExpiryDate           time.Time  `json:"expiry_date"`
	DGShippingUploaded   bool       `json:"dgshipping_uploaded"`
	DGShippingUploadDate *time.Time `json:"dgshipping_upload_date,omitempty"`
	CertificateURL       string     `json:"certificate_url,omitempty"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NewCertificateResponse converts a model into a DTO, deriving status
// against the supplied reference time.
func NewCertificateResponse(model models.Certificate, reference time.Time) CertificateResponse {
	status := model.Status
	if status == models.CertStatusValid && !model.ExpiryDate.IsZero() && model.ExpiryDate.Before(reference) {
		status = models.CertStatusExpired
	}
	return CertificateResponse{
		CertID:               model.CertID,
		StudID:               model.StudID,
		CourseID:             model.CourseID,
		BatchID:              model.BatchID,
		CertNumber:           model.CertNumber,
		IssueDate:            model.IssueDate,
		ExpiryDate:           model.ExpiryDate,
		DGShippingUploaded:   model.DGShippingUploaded,
		DGShippingUploadDate: model.DGShippingUploadDate,
		CertificateURL:       model.CertificateURL,
		Status:               status,
		CreatedAt:            model.CreatedAt,
	}
}

// NewCertificateResponseSlice converts a slice of models into DTOs.
func NewCertificateResponseSlice(certs []models.Certificate, reference time.Time) []CertificateResponse {
	responses := make([]CertificateResponse, 0, len(certs))
	for _, cert := range certs {
		responses = append(responses, NewCertificateResponse(cert, reference))
	}
	return responses
}
