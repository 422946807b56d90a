package repository

import (
	"context"

	"templeseva/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.AdminEntry) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByEmailOrPhone matches either field; zero rows is gorm.ErrRecordNotFound.
func (r *AdminRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.AdminEntry, error) {
	var a domain.AdminEntry
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", email, phone).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.AdminEntry, error) {
	var out []domain.AdminEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
