package repository

import (
	"context"
	"time"

	"templeseva/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	var d domain.Donation
	err := r.db.WithContext(ctx).Preload("Donor").Where("id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	var d domain.Donation
	err := r.db.WithContext(ctx).Preload("Donor").
		Where("razorpay_order_id = ?", orderID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkCompletedIdempotent moves a pending donation to completed inside a
// row-locked transaction. A donation already in a terminal state is left
// untouched and changed=false is returned, so duplicate confirmations and
// webhook replays are harmless.
func (r *DonationRepository) MarkCompletedIdempotent(ctx context.Context, id, paymentID string, completedAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d domain.Donation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&d).Error; err != nil {
			return err
		}
		if d.Status != domain.DonationPending {
			changed = false
			return nil
		}
		res := tx.Model(&domain.Donation{}).Where("id = ? AND status = ?", id, domain.DonationPending).
			Updates(map[string]interface{}{
				"status":              domain.DonationCompleted,
				"razorpay_payment_id": paymentID,
				"completed_at":        completedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}

// MarkFailedIdempotent works like MarkCompletedIdempotent for the failed
// outcome. completed_at stays null for failed payments.
func (r *DonationRepository) MarkFailedIdempotent(ctx context.Context, id, paymentID string) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d domain.Donation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&d).Error; err != nil {
			return err
		}
		if d.Status != domain.DonationPending {
			changed = false
			return nil
		}
		res := tx.Model(&domain.Donation{}).Where("id = ? AND status = ?", id, domain.DonationPending).
			Updates(map[string]interface{}{
				"status":              domain.DonationFailed,
				"razorpay_payment_id": paymentID,
			})
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}

func (r *DonationRepository) SetReceiptURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).Model(&domain.Donation{}).
		Where("id = ?", id).Update("receipt_url", url).Error
}

func (r *DonationRepository) ListAll(ctx context.Context) ([]domain.Donation, error) {
	var out []domain.Donation
	err := r.db.WithContext(ctx).Preload("Donor").
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	var out []domain.Donation
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *DonationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Donation{}).Count(&n).Error
	return n, err
}
