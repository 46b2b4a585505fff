package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-app-core/internal/notify"
	"github.com/i474232898/weather-app-core/internal/store"
	"github.com/i474232898/weather-app-core/internal/units"
	"github.com/i474232898/weather-app-core/internal/weather"
)

type fakeBriefer struct {
	mu    sync.Mutex
	calls map[string]units.TempUnit
	fail  map[string]bool
}

func (f *fakeBriefer) Brief(_ context.Context, city string, unit units.TempUnit) (weather.Briefing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]units.TempUnit{}
	}
	f.calls[city] = unit
	if f.fail[city] {
		return weather.Briefing{}, &weather.HTTPStatusError{Code: 503}
	}
	return weather.Briefing{
		Current:     weather.WeatherSnapshot{Condition: "Sunny"},
		Temperature: "21" + unit.Symbol(),
		Alerts:      []string{"Extreme heat expected at 14:00"},
	}, nil
}

type sent struct {
	user string
	n    notify.Notification
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sent
}

func (d *recordingDispatcher) Dispatch(_ context.Context, userID string, n notify.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sent{user: userID, n: n})
	return nil
}

func (d *recordingDispatcher) users() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, s := range d.sent {
		out = append(out, s.user+"/"+s.n.Category)
	}
	sort.Strings(out)
	return out
}

func TestRunOnce(t *testing.T) {
	profiles := store.NewMemoryStore(
		store.Profile{ID: "alice", MainCity: "Madrid", TempUnit: "Fahrenheit", Notifications: true},
		store.Profile{ID: "bob", MainCity: "Oslo", Notifications: false},
		store.Profile{ID: "carol", Notifications: true},
		store.Profile{ID: "dave", MainCity: "Atlantis", Notifications: true},
	)
	briefer := &fakeBriefer{fail: map[string]bool{"Atlantis": true}}
	dispatcher := &recordingDispatcher{}

	s := New([]string{"alice", "bob", "carol", "dave", "ghost"}, time.Minute, briefer, profiles, dispatcher)
	s.RunOnce(context.Background())

	want := []string{"alice/alerts", "alice/current"}
	got := dispatcher.users()
	if len(got) != len(want) {
		t.Fatalf("dispatched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dispatched %v, want %v", got, want)
			break
		}
	}

	if unit, ok := briefer.calls["Madrid"]; !ok || unit != units.Fahrenheit {
		t.Errorf("expected Madrid briefed in Fahrenheit, got %v (called=%v)", unit, ok)
	}
	if _, ok := briefer.calls["Oslo"]; ok {
		t.Error("user with notifications disabled was briefed")
	}
}

func TestNotifyUserErrors(t *testing.T) {
	profiles := store.NewMemoryStore(store.Profile{ID: "dave", MainCity: "Atlantis", Notifications: true})
	s := New(nil, 0, &fakeBriefer{fail: map[string]bool{"Atlantis": true}}, profiles, &recordingDispatcher{})

	if err := s.notifyUser(context.Background(), "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err := s.notifyUser(context.Background(), "dave")
	var he *weather.HTTPStatusError
	if !errors.As(err, &he) {
		t.Errorf("expected HTTPStatusError, got %v", err)
	}
}

func TestStartWithoutUsers(t *testing.T) {
	s := New(nil, 0, &fakeBriefer{}, store.NewMemoryStore(), &recordingDispatcher{})
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()

	if s.interval != defaultInterval {
		t.Errorf("interval = %v, want %v", s.interval, defaultInterval)
	}
}
