package domain

import "time"

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation tracks a single gift from creation of the gateway order to its
// terminal state. Status only ever moves pending -> completed or
// pending -> failed; CompletedAt is set exactly when status is completed and
// PaymentID is set once a payment was attempted.
type Donation struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	DonorID     string         `json:"donor_id" gorm:"type:uuid;index;not null"`
	Amount      int64          `json:"amount" gorm:"not null"` // rupees
	OrderID     string         `json:"razorpay_order_id" gorm:"column:razorpay_order_id;uniqueIndex;not null"`
	PaymentID   *string        `json:"razorpay_payment_id" gorm:"column:razorpay_payment_id"`
	Status      DonationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Note        *string        `json:"note,omitempty"`
	ReceiptURL  *string        `json:"receipt_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`

	Donor *Donor `json:"donor,omitempty" gorm:"foreignKey:DonorID"`
}

func (Donation) TableName() string { return "donations" }
