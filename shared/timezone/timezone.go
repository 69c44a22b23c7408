package timezone

import (
	"fmt"
	"time"

	"campus/config"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	offset := cfg.App.UTCOffsetHours

	name := fmt.Sprintf("UTC%+d", offset)
	if offset == 9 {
		name = "KST"
	}

	appLocation = time.FixedZone(name, offset*60*60)
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// GetLocation returns the fixed application timezone location
func GetLocation() *time.Location {
	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// HourLabel renders the application-local wall-clock hour of t as the
// top-of-hour label used in occupancy keys, e.g. "09:00" or "14:00".
func HourLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", ToAppTime(t).Hour())
}

// Today returns today's civil date in the application timezone.
func Today() (year int, month time.Month, day int) {
	return Now().Date()
}
