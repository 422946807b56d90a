package puja

import (
	"context"
	"errors"
	"time"

	"templeseva/internal/domain"
)

const scheduleLimit = 10

var ErrBadDate = errors.New("date must be YYYY-MM-DD")

type eventRepo interface {
	Create(ctx context.Context, e *domain.PujaEvent) error
	List(ctx context.Context) ([]domain.PujaEvent, error)
	Upcoming(ctx context.Context, fromDate string, limit int) ([]domain.PujaEvent, error)
	Update(ctx context.Context, e *domain.PujaEvent) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	events eventRepo
	now    func() time.Time
}

func NewService(events eventRepo) *Service {
	return &Service{events: events, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]domain.PujaEvent, error) {
	return s.events.List(ctx)
}

// Schedule returns the next few events, today included.
func (s *Service) Schedule(ctx context.Context) ([]domain.PujaEvent, error) {
	today := s.now().Format("2006-01-02")
	return s.events.Upcoming(ctx, today, scheduleLimit)
}

func (s *Service) Create(ctx context.Context, req EventRequest) (*domain.PujaEvent, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	e := &domain.PujaEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req EventRequest) (*domain.PujaEvent, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	e := &domain.PujaEvent{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	}
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrBadDate
	}
	return nil
}
