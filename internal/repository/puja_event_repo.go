package repository

import (
	"context"

	"templeseva/internal/domain"

	"gorm.io/gorm"
)

type PujaEventRepository struct {
	db *gorm.DB
}

func NewPujaEventRepository(db *gorm.DB) *PujaEventRepository {
	return &PujaEventRepository{db: db}
}

func (r *PujaEventRepository) Create(ctx context.Context, e *domain.PujaEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *PujaEventRepository) GetByID(ctx context.Context, id int64) (*domain.PujaEvent, error) {
	var e domain.PujaEvent
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PujaEventRepository) List(ctx context.Context) ([]domain.PujaEvent, error) {
	var out []domain.PujaEvent
	err := r.db.WithContext(ctx).Order("date ASC").Find(&out).Error
	return out, err
}

// Upcoming returns events on or after fromDate (YYYY-MM-DD), soonest first.
func (r *PujaEventRepository) Upcoming(ctx context.Context, fromDate string, limit int) ([]domain.PujaEvent, error) {
	var out []domain.PujaEvent
	err := r.db.WithContext(ctx).
		Where("date >= ?", fromDate).
		Order("date ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *PujaEventRepository) Update(ctx context.Context, e *domain.PujaEvent) error {
	res := r.db.WithContext(ctx).Model(&domain.PujaEvent{}).Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"title":       e.Title,
			"description": e.Description,
			"date":        e.Date,
			"time":        e.Time,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PujaEventRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.PujaEvent{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
