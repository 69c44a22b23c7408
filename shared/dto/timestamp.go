package dto

import "time"

// Timestamp is the wire representation of an instant: an explicit epoch
// seconds/nanos pair in UTC. The backend never sends ISO strings.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// FromTime converts a time.Time to its wire form. Nanos are always zero:
// the backend stores second precision only.
func FromTime(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   0,
	}
}

// Time converts the wire form back to a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

// IsZero reports whether the pair is unset.
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanos == 0
}
