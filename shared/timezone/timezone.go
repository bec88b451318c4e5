package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation atomic.Pointer[time.Location]

// Init loads the named location. An empty name selects UTC. On an unknown
// name the location falls back to UTC and the load error is returned.
func Init(name string) error {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		appLocation.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation.Store(time.UTC)

		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	appLocation.Store(loc)
	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")

	return nil
}

// GetLocation returns the application location, UTC before Init.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", value, err)
	}

	return t, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
