// Package notify turns weather briefings into user notifications.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/weather"
)

const (
	CategoryCurrent = "current"
	CategoryAlerts  = "alerts"
)

// Notification is a single message for one user.
type Notification struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Build returns the current-conditions notification, followed by an alerts
// notification when the briefing has any alerts.
func Build(b weather.Briefing) []Notification {
	out := []Notification{{
		ID:       uuid.NewString(),
		Category: CategoryCurrent,
		Title:    "Weather Update",
		Content:  fmt.Sprintf("Temperature: %s, Condition: %s", b.Temperature, b.Current.Condition),
	}}

	if len(b.Alerts) > 0 {
		out = append(out, Notification{
			ID:       uuid.NewString(),
			Category: CategoryAlerts,
			Title:    "Weather Alerts",
			Content:  strings.Join(b.Alerts, "\n"),
		})
	}
	return out
}

// Dispatcher delivers a notification to a user.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID string, n Notification) error
}

// LogDispatcher writes notifications to the process log.
type LogDispatcher struct{}

var _ Dispatcher = LogDispatcher{}

func (LogDispatcher) Dispatch(_ context.Context, userID string, n Notification) error {
	log.Infow("notification",
		"user", userID,
		"id", n.ID,
		"category", n.Category,
		"title", n.Title,
		"content", n.Content,
	)
	return nil
}
