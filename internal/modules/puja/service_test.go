package puja

import (
	"context"
	"testing"
	"time"

	"templeseva/internal/domain"

	"github.com/stretchr/testify/assert"
)

type fakeEventRepo struct {
	events     []domain.PujaEvent
	upcomingAt string
	limit      int
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.PujaEvent) error {
	e.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]domain.PujaEvent, error) {
	return f.events, nil
}

func (f *fakeEventRepo) Upcoming(ctx context.Context, fromDate string, limit int) ([]domain.PujaEvent, error) {
	f.upcomingAt = fromDate
	f.limit = limit
	var out []domain.PujaEvent
	for _, e := range f.events {
		if e.Date >= fromDate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.PujaEvent) error { return nil }
func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error           { return nil }

func TestCreate_RejectsBadDate(t *testing.T) {
	svc := NewService(&fakeEventRepo{})

	_, err := svc.Create(context.Background(), EventRequest{
		Title:       "Hanuman Jayanti",
		Description: "Special abhishekam",
		Date:        "14/01/2026",
		Time:        "6:00 AM",
	})
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestSchedule_FiltersFromTodayWithLimit(t *testing.T) {
	repo := &fakeEventRepo{events: []domain.PujaEvent{
		{ID: 1, Title: "Past", Date: "2026-01-01"},
		{ID: 2, Title: "Today", Date: "2026-03-15"},
		{ID: 3, Title: "Future", Date: "2026-04-02"},
	}}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}

	events, err := svc.Schedule(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-15", repo.upcomingAt)
	assert.Equal(t, scheduleLimit, repo.limit)
	assert.Len(t, events, 2)
	assert.Equal(t, "Today", events[0].Title)
}
