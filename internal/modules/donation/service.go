package donation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"templeseva/internal/domain"
	"templeseva/internal/metrics"
	"templeseva/internal/modules/receipt"
	"templeseva/internal/razorpay"
	"templeseva/internal/repository"
	"templeseva/internal/storage"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
)

type Service struct {
	donors    donorRepo
	donations donationRepo
	users     userReader
	settings  settingsReader
	gateway   orderCreator
	store     storage.ObjectStore
	metrics   *metrics.PaymentMetrics
	feed      FeedBroadcaster
	mailer    Mailer
	loggerf   func(format string, args ...interface{})

	keySecret     string
	webhookSecret string
	templeName    string
}

func NewService(
	donors donorRepo,
	donations donationRepo,
	users userReader,
	settings settingsReader,
	gateway orderCreator,
	store storage.ObjectStore,
	m *metrics.PaymentMetrics,
	feed FeedBroadcaster,
	mailer Mailer,
	keySecret, webhookSecret, templeName string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		donors:        donors,
		donations:     donations,
		users:         users,
		settings:      settings,
		gateway:       gateway,
		store:         store,
		metrics:       m,
		feed:          feed,
		mailer:        mailer,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		templeName:    templeName,
		loggerf:       loggerf,
	}
}

// CreateOrder opens a gateway order and records a pending donation. The
// donation row is inserted only after the gateway call succeeds, so a failed
// order never leaves an orphan row behind.
func (s *Service) CreateOrder(ctx context.Context, userID int64, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if req.Amount < 1 {
		return nil, ErrInvalidAmount
	}

	donor, err := s.resolveDonor(ctx, userID)
	if err != nil {
		return nil, err
	}

	label := fmt.Sprintf("donation_%s_%d", donor.ID, time.Now().UnixMilli())
	order, err := s.gateway.CreateOrder(req.Amount*100, label)
	if err != nil {
		s.loggerf("level=error msg=gateway order failed donor_id=%s amount=%d err=%v", donor.ID, req.Amount, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	d := &domain.Donation{
		DonorID: donor.ID,
		Amount:  req.Amount,
		OrderID: order.ID,
		Status:  domain.DonationPending,
		Note:    req.Note,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("save donation failed: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreatedTotal.Inc()
	}
	s.loggerf("level=info msg=donation order created donation_id=%s order_id=%s amount=%d", d.ID, order.ID, req.Amount)

	return &CreateOrderResponse{
		OrderID:    order.ID,
		Amount:     order.AmountPaise / 100,
		Key:        s.gateway.KeyID(),
		DonationID: d.ID,
	}, nil
}

// resolveDonor returns the caller's donor record, creating one lazily on the
// first donation attempt. A concurrent first call is absorbed through the
// unique email constraint.
func (s *Service) resolveDonor(ctx context.Context, userID int64) (*domain.Donor, error) {
	donor, err := s.donors.GetByUserID(ctx, userID)
	if err == nil {
		return donor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetch donor failed: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user failed: %w", err)
	}

	name := user.Name
	if name == "" {
		if at := strings.Index(user.Email, "@"); at > 0 {
			name = user.Email[:at]
		} else {
			name = "Donor"
		}
	}

	uid := userID
	donor = &domain.Donor{
		UserID:   &uid,
		Name:     name,
		Email:    user.Email,
		Phone:    user.Phone,
		Verified: true,
	}
	if err := s.donors.Create(ctx, donor); err != nil {
		if repository.IsDuplicateKey(err) {
			return s.donors.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("create donor failed: %w", err)
	}
	return donor, nil
}

// VerifyPayment handles the checkout callback: signature check, idempotent
// completion, receipt issuance. A receipt failure degrades to a null receipt
// URL instead of failing the confirmation, since the payment itself already
// went through.
func (s *Service) VerifyPayment(ctx context.Context, userID int64, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, ErrMissingDetails
	}

	if !razorpay.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, s.keySecret) {
		if s.metrics != nil {
			s.metrics.PaymentsVerifiedTotal.WithLabelValues("invalid_signature").Inc()
		}
		s.loggerf("level=warn msg=payment signature mismatch order_id=%s", req.OrderID)
		return nil, ErrInvalidSignature
	}

	d, err := s.donations.GetByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch donation failed: %w", err)
	}

	// A valid signature only proves the order+payment pair; it says nothing
	// about which donation the caller named, so tie both down.
	if d.OrderID != req.OrderID {
		return nil, ErrOrderMismatch
	}
	if d.Donor == nil || d.Donor.UserID == nil || *d.Donor.UserID != userID {
		return nil, ErrNotOwner
	}

	now := time.Now().UTC()
	changed, err := s.donations.MarkCompletedIdempotent(ctx, d.ID, req.PaymentID, now)
	if err != nil {
		return nil, fmt.Errorf("complete donation failed: %w", err)
	}
	if !changed {
		// Repeating the same outcome is a harmless retry; anything else on a
		// settled donation is a conflict.
		if d.Status != domain.DonationCompleted || d.PaymentID == nil || *d.PaymentID != req.PaymentID {
			return nil, ErrPaymentConflict
		}
		s.loggerf("level=info msg=idempotent confirmation donation already final donation_id=%s", d.ID)
	}
	if s.metrics != nil {
		s.metrics.PaymentsVerifiedTotal.WithLabelValues("success").Inc()
		if changed {
			s.metrics.DonationAmountTotal.Add(float64(d.Amount))
		}
	}

	receiptURL := d.ReceiptURL
	if changed || receiptURL == nil {
		receiptURL = s.issueReceipt(ctx, d, req.PaymentID, now)
	}

	if changed && s.feed != nil && d.Donor != nil {
		note := ""
		if d.Note != nil {
			note = *d.Note
		}
		s.feed.BroadcastDonation(d.Donor.Name, d.Amount, note, now)
	}

	return &VerifyPaymentResponse{
		Success:    true,
		ReceiptURL: receiptURL,
		Donation: DonationSummary{
			ID:        d.ID,
			Amount:    d.Amount,
			PaymentID: req.PaymentID,
			Status:    string(domain.DonationCompleted),
		},
	}, nil
}

// issueReceipt renders, uploads and persists the receipt artifact. Returns
// nil on any failure; the confirmation still succeeds and the receipt can be
// regenerated later.
func (s *Service) issueReceipt(ctx context.Context, d *domain.Donation, paymentID string, at time.Time) *string {
	donorName := "Donor"
	if d.Donor != nil && d.Donor.Name != "" {
		donorName = d.Donor.Name
	}
	note := ""
	if d.Note != nil {
		note = *d.Note
	}

	pdf, htmlBody, err := receipt.Render(receipt.Data{
		DonorName: donorName,
		Amount:    d.Amount,
		PaymentID: paymentID,
		OrderID:   d.OrderID,
		Date:      at.Format("02/01/2006"),
		Note:      note,
	})
	if err != nil {
		s.receiptFailure(d.ID, "render", err)
		return nil
	}

	path := fmt.Sprintf("receipts/%s_%d.pdf", d.ID, at.UnixMilli())
	if err := s.store.Put(ctx, path, pdf, "application/pdf"); err != nil {
		s.receiptFailure(d.ID, "upload", err)
		return nil
	}

	url := s.store.PublicURL(path)
	if err := s.donations.SetReceiptURL(ctx, d.ID, url); err != nil {
		s.receiptFailure(d.ID, "persist", err)
		return nil
	}

	if s.mailer != nil && d.Donor != nil && d.Donor.Email != "" {
		if err := s.mailer.SendReceipt(ctx, d.Donor.Email, "Your donation receipt", htmlBody); err != nil {
			s.loggerf("level=warn msg=receipt email failed donation_id=%s err=%v", d.ID, err)
		}
	}
	return &url
}

func (s *Service) receiptFailure(donationID, stage string, err error) {
	if s.metrics != nil {
		s.metrics.ReceiptFailuresTotal.Inc()
	}
	s.loggerf("level=error msg=receipt %s failed donation_id=%s err=%v", stage, donationID, err)
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook is the gateway-initiated confirmation path. Once the raw-body
// signature checks out the delivery is always acknowledged, including for
// unknown orders, so the gateway never retry-storms over business outcomes.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if signature == "" || !razorpay.VerifyWebhookSignature(body, signature, s.webhookSecret) {
		return ErrInvalidSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if s.metrics != nil {
		s.metrics.WebhookEventsTotal.WithLabelValues(event.Event).Inc()
	}

	if event.Event != eventPaymentCaptured && event.Event != eventPaymentFailed {
		return nil
	}

	payment := event.Payload.Payment.Entity
	d, err := s.donations.GetByOrderID(ctx, payment.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.loggerf("level=warn msg=webhook for unknown order order_id=%s event=%s", payment.OrderID, event.Event)
			return nil
		}
		return fmt.Errorf("fetch donation failed: %w", err)
	}

	switch event.Event {
	case eventPaymentCaptured:
		changed, err := s.donations.MarkCompletedIdempotent(ctx, d.ID, payment.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("complete donation failed: %w", err)
		}
		if changed {
			if s.metrics != nil {
				s.metrics.DonationAmountTotal.Add(float64(d.Amount))
			}
			if s.feed != nil && d.Donor != nil {
				note := ""
				if d.Note != nil {
					note = *d.Note
				}
				s.feed.BroadcastDonation(d.Donor.Name, d.Amount, note, time.Now().UTC())
			}
		}
	case eventPaymentFailed:
		if _, err := s.donations.MarkFailedIdempotent(ctx, d.ID, payment.ID); err != nil {
			return fmt.Errorf("fail donation failed: %w", err)
		}
	}

	return nil
}

// MyDonations lists the caller's donations, newest first. A user who never
// donated simply gets an empty list.
func (s *Service) MyDonations(ctx context.Context, userID int64) ([]domain.Donation, error) {
	donor, err := s.donors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.Donation{}, nil
		}
		return nil, err
	}
	return s.donations.ListByDonor(ctx, donor.ID)
}

// DonationQR renders a PNG QR code for a direct UPI transfer to the temple.
func (s *Service) DonationQR(ctx context.Context, amount int64) ([]byte, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoUPI
		}
		return nil, err
	}
	if settings.UPIID == "" {
		return nil, ErrNoUPI
	}

	q := url.Values{}
	q.Set("pa", settings.UPIID)
	q.Set("pn", s.templeName)
	q.Set("cu", "INR")
	if amount > 0 {
		q.Set("am", strconv.FormatInt(amount, 10))
	}
	return qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
}
