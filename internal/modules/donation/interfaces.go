package donation

import (
	"context"
	"time"

	"templeseva/internal/domain"
	"templeseva/internal/razorpay"
)

type donorRepo interface {
	Create(ctx context.Context, d *domain.Donor) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Donor, error)
}

type donationRepo interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error)
	MarkCompletedIdempotent(ctx context.Context, id, paymentID string, completedAt time.Time) (bool, error)
	MarkFailedIdempotent(ctx context.Context, id, paymentID string) (bool, error)
	SetReceiptURL(ctx context.Context, id, url string) error
	ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*domain.TempleSettings, error)
}

// orderCreator is the gateway surface the service needs; *razorpay.Client
// satisfies it and tests provide a fake.
type orderCreator interface {
	CreateOrder(amountPaise int64, receipt string) (*razorpay.Order, error)
	KeyID() string
}

// FeedBroadcaster pushes completed donations to the live display. Optional.
type FeedBroadcaster interface {
	BroadcastDonation(donorName string, amount int64, note string, completedAt time.Time)
}

// Mailer delivers the HTML receipt to the donor. Optional; delivery failures
// never affect the confirmation.
type Mailer interface {
	SendReceipt(ctx context.Context, to, subject, htmlBody string) error
}
