package admin

import (
	"context"

	"templeseva/internal/domain"
)

type adminRepo interface {
	Create(ctx context.Context, a *domain.AdminEntry) error
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.AdminEntry, error)
	List(ctx context.Context) ([]domain.AdminEntry, error)
}

type donorRepo interface {
	Create(ctx context.Context, d *domain.Donor) error
	GetByEmail(ctx context.Context, email string) (*domain.Donor, error)
}

type donationRepo interface {
	Create(ctx context.Context, d *domain.Donation) error
	ListAll(ctx context.Context) ([]domain.Donation, error)
}

type settingsRepo interface {
	Upsert(ctx context.Context, email, phone, upiID *string) (*domain.TempleSettings, error)
}
