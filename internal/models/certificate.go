package models

import "time"

// Certificate states.
const (
	CertStatusValid   = "valid"
	CertStatusExpired = "expired"
	CertStatusRevoked = "revoked"
)

// Certificate records a course completion. DGShippingUploaded is a reporting
// flag only; there is no live DG Shipping integration.
type Certificate struct {
	CertID               string     `gorm:"column:certid;primaryKey;size:64" json:"certid"`
	StudID               string     `gorm:"column:studid;index;not null;size:64" json:"studid"`
	CourseID             string     `gorm:"column:courseid;not null;size:64" json:"courseid"`
	BatchID              string     `gorm:"column:batchid;not null;size:64" json:"batchid"`
	CertNumber           string     `gorm:"size:64;not null" json:"cert_number"`
	IssueDate            time.Time  `gorm:"not null" json:"issue_date"`
	ExpiryDate           time.Time  `json:"expiry_date"`
	DGShippingUploaded   bool       `gorm:"column:dgshipping_uploaded;not null;default:false" json:"dgshipping_uploaded"`
	DGShippingUploadDate *time.Time `gorm:"column:dgshipping_upload_date" json:"dgshipping_upload_date,omitempty"`
	CertificateURL       string     `gorm:"size:512" json:"certificate_url,omitempty"`
	Status               string     `gorm:"size:16;not null;default:valid" json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
}
