package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"templeseva/internal/domain"
	"templeseva/internal/razorpay"
	"templeseva/internal/storage"

	"gorm.io/gorm"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type mockDonorRepo struct {
	byUser      map[int64]*domain.Donor
	createCalls int
	createErr   error
}

func (m *mockDonorRepo) Create(ctx context.Context, d *domain.Donor) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	d.ID = "donor-new"
	if m.byUser == nil {
		m.byUser = map[int64]*domain.Donor{}
	}
	m.byUser[*d.UserID] = d
	return nil
}

func (m *mockDonorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Donor, error) {
	if d, ok := m.byUser[userID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockDonationRepo struct {
	byID           map[string]*domain.Donation
	byOrder        map[string]*domain.Donation
	createCalls    int
	completedCalls int
	failedCalls    int
	receiptURL     string
	receiptErr     error
}

func (m *mockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	m.createCalls++
	d.ID = "don-1"
	if m.byID == nil {
		m.byID = map[string]*domain.Donation{}
		m.byOrder = map[string]*domain.Donation{}
	}
	m.byID[d.ID] = d
	m.byOrder[d.OrderID] = d
	return nil
}

func (m *mockDonationRepo) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDonationRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	if d, ok := m.byOrder[orderID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDonationRepo) MarkCompletedIdempotent(ctx context.Context, id, paymentID string, completedAt time.Time) (bool, error) {
	m.completedCalls++
	d, ok := m.byID[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if d.Status != domain.DonationPending {
		return false, nil
	}
	d.Status = domain.DonationCompleted
	d.PaymentID = &paymentID
	d.CompletedAt = &completedAt
	return true, nil
}

func (m *mockDonationRepo) MarkFailedIdempotent(ctx context.Context, id, paymentID string) (bool, error) {
	m.failedCalls++
	d, ok := m.byID[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if d.Status != domain.DonationPending {
		return false, nil
	}
	d.Status = domain.DonationFailed
	d.PaymentID = &paymentID
	return true, nil
}

func (m *mockDonationRepo) SetReceiptURL(ctx context.Context, id, url string) error {
	if m.receiptErr != nil {
		return m.receiptErr
	}
	m.receiptURL = url
	if d, ok := m.byID[id]; ok {
		d.ReceiptURL = &url
	}
	return nil
}

func (m *mockDonationRepo) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range m.byID {
		if d.DonorID == donorID {
			out = append(out, *d)
		}
	}
	return out, nil
}

type mockUserReader struct {
	user *domain.User
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.user, nil
}

type mockSettingsReader struct {
	settings *domain.TempleSettings
}

func (m *mockSettingsReader) Get(ctx context.Context) (*domain.TempleSettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.settings, nil
}

type mockGateway struct {
	order       *razorpay.Order
	err         error
	createCalls int
}

func (m *mockGateway) CreateOrder(amountPaise int64, receipt string) (*razorpay.Order, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.order != nil {
		return m.order, nil
	}
	return &razorpay.Order{ID: "order_test1", AmountPaise: amountPaise}, nil
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

type mockStore struct {
	puts   int
	putErr error
}

func (m *mockStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	m.puts++
	return m.putErr
}

func (m *mockStore) PublicURL(path string) string { return "https://cdn.example/" + path }

var _ storage.ObjectStore = (*mockStore)(nil)

type mockFeed struct {
	broadcasts int
	lastAmount int64
}

func (m *mockFeed) BroadcastDonation(donorName string, amount int64, note string, completedAt time.Time) {
	m.broadcasts++
	m.lastAmount = amount
}

func newTestService(donors *mockDonorRepo, donations *mockDonationRepo, gw *mockGateway, store *mockStore) *Service {
	return &Service{
		donors:        donors,
		donations:     donations,
		users:         &mockUserReader{user: &domain.User{ID: 7, Email: "devotee@example.com", Name: "Devotee"}},
		settings:      &mockSettingsReader{},
		gateway:       gw,
		store:         store,
		keySecret:     "test_secret",
		webhookSecret: "hook_secret",
		templeName:    "Sri Abhayanjaneya Swamy Temple",
		loggerf:       func(string, ...interface{}) {},
	}
}

func TestCreateOrder_RejectsZeroAmount(t *testing.T) {
	donations := &mockDonationRepo{}
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, &mockStore{})

	_, err := svc.CreateOrder(context.Background(), 7, CreateOrderRequest{Amount: 0})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if donations.createCalls != 0 {
		t.Fatalf("expected no donation row, got %d creates", donations.createCalls)
	}
}

func TestCreateOrder_GatewayFailureLeavesNoRow(t *testing.T) {
	donations := &mockDonationRepo{}
	uid := int64(7)
	donors := &mockDonorRepo{byUser: map[int64]*domain.Donor{7: {ID: "donor-1", UserID: &uid}}}
	svc := newTestService(donors, donations, &mockGateway{err: errors.New("gateway down")}, &mockStore{})

	_, err := svc.CreateOrder(context.Background(), 7, CreateOrderRequest{Amount: 501})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	if donations.createCalls != 0 {
		t.Fatalf("expected no donation row after gateway failure, got %d creates", donations.createCalls)
	}
}

func TestCreateOrder_ConvertsRupeesToPaise(t *testing.T) {
	donations := &mockDonationRepo{}
	uid := int64(7)
	donors := &mockDonorRepo{byUser: map[int64]*domain.Donor{7: {ID: "donor-1", UserID: &uid}}}
	gw := &mockGateway{order: &razorpay.Order{ID: "order_abc", AmountPaise: 50100}}
	svc := newTestService(donors, donations, gw, &mockStore{})

	resp, err := svc.CreateOrder(context.Background(), 7, CreateOrderRequest{Amount: 501})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OrderID != "order_abc" || resp.Amount != 501 || resp.Key != "rzp_test_key" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	d := donations.byOrder["order_abc"]
	if d == nil || d.Status != domain.DonationPending || d.Amount != 501 {
		t.Fatalf("expected pending donation at 501 rupees, got %+v", d)
	}
}

func TestCreateOrder_CreatesDonorOnFirstDonation(t *testing.T) {
	donations := &mockDonationRepo{}
	donors := &mockDonorRepo{}
	svc := newTestService(donors, donations, &mockGateway{}, &mockStore{})

	_, err := svc.CreateOrder(context.Background(), 7, CreateOrderRequest{Amount: 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if donors.createCalls != 1 {
		t.Fatalf("expected donor created once, got %d", donors.createCalls)
	}
	d := donors.byUser[7]
	if d == nil || d.Email != "devotee@example.com" || d.Name != "Devotee" {
		t.Fatalf("unexpected donor: %+v", d)
	}
}

func pendingDonation(userID int64) (*mockDonationRepo, *domain.Donation) {
	uid := userID
	donor := &domain.Donor{ID: "donor-1", UserID: &uid, Name: "Devotee"}
	d := &domain.Donation{
		ID:      "don-1",
		DonorID: donor.ID,
		Amount:  501,
		OrderID: "order_abc",
		Status:  domain.DonationPending,
		Donor:   donor,
	}
	return &mockDonationRepo{
		byID:    map[string]*domain.Donation{d.ID: d},
		byOrder: map[string]*domain.Donation{d.OrderID: d},
	}, d
}

func TestVerifyPayment_InvalidSignatureLeavesPending(t *testing.T) {
	donations, d := pendingDonation(7)
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, &mockStore{})

	req := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  "deadbeef",
		DonationID: "don-1",
	}
	_, err := svc.VerifyPayment(context.Background(), 7, req)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if d.Status != domain.DonationPending {
		t.Fatalf("expected donation still pending, got %s", d.Status)
	}
}

func TestVerifyPayment_CompletesAndIssuesReceipt(t *testing.T) {
	donations, d := pendingDonation(7)
	store := &mockStore{}
	feed := &mockFeed{}
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, store)
	svc.feed = feed

	req := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_abc", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	resp, err := svc.VerifyPayment(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.Donation.Status != "completed" || resp.Donation.PaymentID != "pay_123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ReceiptURL == nil || donations.receiptURL == "" {
		t.Fatalf("expected receipt url to be set")
	}
	if d.Status != domain.DonationCompleted || d.CompletedAt == nil {
		t.Fatalf("expected completed donation with timestamp, got %+v", d)
	}
	if store.puts != 1 {
		t.Fatalf("expected one receipt upload, got %d", store.puts)
	}
	if feed.broadcasts != 1 || feed.lastAmount != 501 {
		t.Fatalf("expected one feed broadcast of 501, got %d/%d", feed.broadcasts, feed.lastAmount)
	}
}

func TestVerifyPayment_IdempotentOnRepeat(t *testing.T) {
	donations, _ := pendingDonation(7)
	store := &mockStore{}
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, store)

	req := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_abc", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	first, err := svc.VerifyPayment(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("unexpected error on first verify: %v", err)
	}
	second, err := svc.VerifyPayment(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("unexpected error on repeat verify: %v", err)
	}
	if !second.Success {
		t.Fatalf("expected repeat confirmation to succeed")
	}
	if store.puts != 1 {
		t.Fatalf("expected receipt generated once, got %d uploads", store.puts)
	}
	if first.ReceiptURL == nil || second.ReceiptURL == nil || *first.ReceiptURL != *second.ReceiptURL {
		t.Fatalf("expected stable receipt url across retries")
	}
}

func TestVerifyPayment_DifferentPaymentOnSettledDonationConflicts(t *testing.T) {
	donations, _ := pendingDonation(7)
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, &mockStore{})

	first := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_abc", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	_, err := svc.VerifyPayment(context.Background(), 7, first)
	if err != nil {
		t.Fatalf("unexpected error on first verify: %v", err)
	}

	other := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_456",
		Signature:  signPayment("order_abc", "pay_456", "test_secret"),
		DonationID: "don-1",
	}
	_, err = svc.VerifyPayment(context.Background(), 7, other)
	if !errors.Is(err, ErrPaymentConflict) {
		t.Fatalf("expected ErrPaymentConflict, got %v", err)
	}
}

func TestVerifyPayment_RejectsForeignDonation(t *testing.T) {
	donations, d := pendingDonation(42)
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, &mockStore{})

	req := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_abc", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	_, err := svc.VerifyPayment(context.Background(), 7, req)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if d.Status != domain.DonationPending {
		t.Fatalf("expected donation untouched, got %s", d.Status)
	}
}

func TestVerifyPayment_RejectsOrderMismatch(t *testing.T) {
	donations, _ := pendingDonation(7)
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, &mockStore{})

	// Signature is valid for a different order than the one the donation holds.
	req := VerifyPaymentRequest{
		OrderID:    "order_other",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_other", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	_, err := svc.VerifyPayment(context.Background(), 7, req)
	if !errors.Is(err, ErrOrderMismatch) {
		t.Fatalf("expected ErrOrderMismatch, got %v", err)
	}
}

func TestVerifyPayment_ReceiptFailureDegradesToNull(t *testing.T) {
	donations, d := pendingDonation(7)
	store := &mockStore{putErr: errors.New("bucket unavailable")}
	svc := newTestService(&mockDonorRepo{}, donations, &mockGateway{}, store)

	req := VerifyPaymentRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_123",
		Signature:  signPayment("order_abc", "pay_123", "test_secret"),
		DonationID: "don-1",
	}
	resp, err := svc.VerifyPayment(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("expected confirmation to succeed despite receipt failure, got %v", err)
	}
	if !resp.Success || resp.ReceiptURL != nil {
		t.Fatalf("expected success with null receipt url, got %+v", resp)
	}
	if d.Status != domain.DonationCompleted {
		t.Fatalf("expected donation completed, got %s", d.Status)
	}
}

func TestMyDonations_EmptyForNewUser(t *testing.T) {
	svc := newTestService(&mockDonorRepo{}, &mockDonationRepo{}, &mockGateway{}, &mockStore{})

	list, err := svc.MyDonations(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestDonationQR_RequiresUPI(t *testing.T) {
	svc := newTestService(&mockDonorRepo{}, &mockDonationRepo{}, &mockGateway{}, &mockStore{})

	_, err := svc.DonationQR(context.Background(), 101)
	if !errors.Is(err, ErrNoUPI) {
		t.Fatalf("expected ErrNoUPI, got %v", err)
	}

	svc.settings = &mockSettingsReader{settings: &domain.TempleSettings{ID: 1, UPIID: "temple@upi"}}
	png, err := svc.DonationQR(context.Background(), 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(png) == 0 || png[1] != 'P' || png[2] != 'N' || png[3] != 'G' {
		t.Fatalf("expected PNG output")
	}
}
