package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/notify"
	"github.com/i474232898/weather-app-core/internal/store"
	"github.com/i474232898/weather-app-core/internal/units"
	"github.com/i474232898/weather-app-core/internal/weather"
)

const (
	defaultInterval = 15 * time.Minute
	userTimeout     = 30 * time.Second
)

// Briefer produces the snapshot and alerts for a city in one call.
type Briefer interface {
	Brief(ctx context.Context, city string, unit units.TempUnit) (weather.Briefing, error)
}

// Scheduler periodically sends weather notifications to configured users.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	briefer    Briefer
	profiles   store.ProfileReader
	dispatcher notify.Dispatcher
	users      []string
	interval   time.Duration
}

// New creates a new Scheduler.
func New(users []string, interval time.Duration, briefer Briefer, profiles store.ProfileReader, dispatcher notify.Dispatcher) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		briefer:    briefer,
		profiles:   profiles,
		dispatcher: dispatcher,
		users:      users,
		interval:   interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.users) == 0 {
		log.Infof("scheduler: no users configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule notification job: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunOnce notifies every configured user and waits for all of them.
func (s *Scheduler) RunOnce(ctx context.Context) {
	log.Infof("scheduler: running notification job for %d users", len(s.users))

	var wg sync.WaitGroup
	for _, id := range s.users {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, userTimeout)
			defer cancel()

			if err := s.notifyUser(ctx, id); err != nil {
				log.Warnw("scheduler: notification failed", "user", id, "error", err)
			}
		}(id)
	}
	wg.Wait()
	log.Infof("scheduler: completed notification job")
}

func (s *Scheduler) notifyUser(ctx context.Context, id string) error {
	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !p.Notifications || p.MainCity == "" {
		log.Debugw("scheduler: skipping user", "user", id, "notifications", p.Notifications, "mainCity", p.MainCity)
		return nil
	}

	b, err := s.briefer.Brief(ctx, p.MainCity, p.Preferences().Temp)
	if err != nil {
		return err
	}

	for _, n := range notify.Build(b) {
		if err := s.dispatcher.Dispatch(ctx, id, n); err != nil {
			return fmt.Errorf("dispatch %s notification: %w", n.Category, err)
		}
	}
	return nil
}
