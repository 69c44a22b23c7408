// Package timezone pins the application to a fixed UTC offset.
//
// Every timestamp on the wire is a UTC epoch pair and every human-facing
// hour label is campus-local civil time. The campus backend assumes a
// constant +9 hour offset (KST) with no daylight saving and no locale
// lookup, so the offset is applied with time.FixedZone rather than an
// IANA location. The offset is configurable via APP_UTC_OFFSET_HOURS and
// defaults to 9.
//
// Usage:
//
//	local := timezone.ToAppTime(t)            // shift an instant to campus time
//	label := timezone.HourLabel(t)            // "14:00"
//	y, m, d := timezone.Today()               // campus-local civil date
package timezone
