package store

import (
	"context"
	"errors"

	"github.com/i474232898/weather-app-core/internal/units"
)

var (
	// ErrNotFound is returned when no profile exists for a user id.
	ErrNotFound = errors.New("profile not found")
)

// Profile is a user's stored weather settings.
type Profile struct {
	ID            string            `bson:"_id" json:"id"`
	Name          string            `bson:"name,omitempty" json:"name,omitempty"`
	MainCity      string            `bson:"mainCity,omitempty" json:"mainCity,omitempty"`
	SavedCities   map[string]string `bson:"savedCities,omitempty" json:"savedCities,omitempty"`
	TempUnit      string            `bson:"tempUnit,omitempty" json:"tempUnit,omitempty"`
	WindSpeedUnit string            `bson:"windSpeedUnit,omitempty" json:"windSpeedUnit,omitempty"`
	Notifications bool              `bson:"notifications" json:"notifications"`
}

// Preferences resolves the stored unit strings, falling back to defaults
// for anything missing or unrecognized.
func (p Profile) Preferences() units.Preferences {
	return units.PreferencesFromStrings(p.TempUnit, p.WindSpeedUnit)
}

// ProfileReader looks up profiles by user id.
type ProfileReader interface {
	GetProfile(ctx context.Context, id string) (Profile, error)
}
