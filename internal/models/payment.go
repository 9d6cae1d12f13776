package models

import "time"

// Payment methods and states.
const (
	PaymentMethodWallet     = "wallet"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodCash       = "cash"

	PaymentRecordPending  = "pending"
	PaymentRecordSuccess  = "success"
	PaymentRecordFailed   = "failed"
	PaymentRecordRefunded = "refunded"
)

// Payment confirms a booking's payment. Recording a successful payment also
// flips the owning booking's payment_status to completed.
type Payment struct {
	PayID       string    `gorm:"column:payid;primaryKey;size:64" json:"payid"`
	BookID      string    `gorm:"column:bookid;index;not null;size:64" json:"bookid"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Method      string    `gorm:"size:16;not null" json:"method"`
	TxnRef      string    `gorm:"size:64" json:"txn_ref,omitempty"`
	Status      string    `gorm:"size:16;not null" json:"status"`
	PaymentDate time.Time `gorm:"not null" json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}
