package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"templeseva/internal/domain"
	"templeseva/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	admins    adminRepo
	donors    donorRepo
	donations donationRepo
	settings  settingsRepo

	// designated operator identities from config, privileged without a row
	fallbackEmail string
	fallbackPhone string
}

func NewService(admins adminRepo, donors donorRepo, donations donationRepo, settings settingsRepo, fallbackEmail, fallbackPhone string) *Service {
	return &Service{
		admins:        admins,
		donors:        donors,
		donations:     donations,
		settings:      settings,
		fallbackEmail: strings.ToLower(strings.TrimSpace(fallbackEmail)),
		fallbackPhone: digitsOnly(fallbackPhone),
	}
}

// IsAdmin satisfies the admin gate middleware. The config identities are
// checked before the table so the operator can never be locked out by an
// empty admins table.
func (s *Service) IsAdmin(ctx context.Context, email, phone string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = digitsOnly(phone)
	if email == "" && phone == "" {
		return false, nil
	}

	if (email != "" && email == s.fallbackEmail) || (phone != "" && phone == s.fallbackPhone) {
		return true, nil
	}

	_, err := s.admins.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) CheckAdmin(ctx context.Context, req CheckAdminRequest) (*CheckAdminResponse, error) {
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "" {
		return nil, ErrMissingIdentity
	}
	ok, err := s.IsAdmin(ctx, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	return &CheckAdminResponse{IsAdmin: ok}, nil
}

func (s *Service) AddAdmin(ctx context.Context, req AddAdminRequest) (*domain.AdminEntry, error) {
	entry := &domain.AdminEntry{
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: digitsOnly(req.Phone),
		Role:  "admin",
	}
	if err := s.admins.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]domain.AdminEntry, error) {
	return s.admins.List(ctx)
}

func (s *Service) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	return s.donations.ListAll(ctx)
}

// RecordOfflineDonation books a donation received outside the gateway, for
// example a bank transfer or cash at the hundi. The donor is keyed by a
// synthetic email derived from the bank transaction id so re-submitting the
// same transfer reuses the donor instead of multiplying it.
func (s *Service) RecordOfflineDonation(ctx context.Context, req OfflineDonationRequest) (*OfflineDonationResponse, error) {
	if req.Amount < 1 || strings.TrimSpace(req.DonorName) == "" || strings.TrimSpace(req.BankTxnID) == "" {
		return nil, ErrInvalidDonation
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date", ErrInvalidDonation)
	}

	txnID := strings.TrimSpace(req.BankTxnID)
	email := fmt.Sprintf("offline_%s@temple.local", txnID)

	donor, err := s.donors.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		donor = &domain.Donor{
			Name:     strings.TrimSpace(req.DonorName),
			Email:    email,
			Verified: true,
		}
		if err := s.donors.Create(ctx, donor); err != nil {
			if repository.IsDuplicateKey(err) {
				donor, err = s.donors.GetByEmail(ctx, email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	}

	paymentID := "OFFLINE_" + txnID
	completedAt := date
	d := &domain.Donation{
		DonorID:     donor.ID,
		Amount:      req.Amount,
		OrderID:     fmt.Sprintf("OFFLINE_%d", time.Now().UnixMilli()),
		PaymentID:   &paymentID,
		Status:      domain.DonationCompleted,
		CreatedAt:   date,
		CompletedAt: &completedAt,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	d.Donor = donor

	return &OfflineDonationResponse{Success: true, Donation: *d}, nil
}

func (s *Service) UpdateTempleContact(ctx context.Context, req TempleContactRequest) (*domain.TempleSettings, error) {
	return s.settings.Upsert(ctx, req.TempleEmail, req.TemplePhone, req.UPIID)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
