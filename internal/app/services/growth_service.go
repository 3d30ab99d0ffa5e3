package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// GrowthService computes attendance growth metrics on demand
type GrowthService struct {
	users      UserStore
	attendance AttendanceStore
	events     EventStore
	loc        *time.Location
	now        func() time.Time
	log        zerolog.Logger
}

// NewGrowthService creates a growth service that cuts windows at midnight in loc
func NewGrowthService(users UserStore, attendance AttendanceStore, events EventStore, loc *time.Location, log zerolog.Logger) *GrowthService {
	if loc == nil {
		loc = time.UTC
	}
	return &GrowthService{
		users:      users,
		attendance: attendance,
		events:     events,
		loc:        loc,
		now:        time.Now,
		log:        log,
	}
}

// GetMetrics loads members, attendance and events concurrently and aggregates them
func (s *GrowthService) GetMetrics(ctx context.Context) (*dto.GrowthMetrics, error) {
	var (
		users       []*models.User
		attendances []*models.Attendance
		events      []*models.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx, models.UserFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		attendances, err = s.attendance.ListWithEventDates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.events.List(gctx, models.EventFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("Failed to load growth metric inputs")
		return nil, fmt.Errorf("error loading growth metrics: %w", err)
	}

	metrics := ComputeGrowthMetrics(users, attendances, events, s.now().In(s.loc))
	return &metrics, nil
}
