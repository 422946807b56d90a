package repository

import (
	"context"
	"strings"

	"templeseva/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

func (r *DonorRepository) Create(ctx context.Context, d *domain.Donor) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonorRepository) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	var d domain.Donor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Donor, error) {
	var d domain.Donor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonorRepository) GetByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	var d domain.Donor
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
