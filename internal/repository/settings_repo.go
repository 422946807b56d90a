package repository

import (
	"context"

	"templeseva/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.TempleSettings, error) {
	var s domain.TempleSettings
	if err := r.db.WithContext(ctx).Where("id = ?", 1).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes the singleton settings row, updating only the provided
// non-nil fields.
func (r *SettingsRepository) Upsert(ctx context.Context, email, phone, upiID *string) (*domain.TempleSettings, error) {
	s := domain.TempleSettings{ID: 1}
	cols := []string{}
	if email != nil {
		s.TempleEmail = *email
		cols = append(cols, "temple_email")
	}
	if phone != nil {
		s.TemplePhone = *phone
		cols = append(cols, "temple_phone")
	}
	if upiID != nil {
		s.UPIID = *upiID
		cols = append(cols, "upi_id")
	}
	if len(cols) == 0 {
		return r.Get(ctx)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&s).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
