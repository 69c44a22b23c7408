package model

import (
	"github.com/rs/zerolog/log"

	"campus/internal/domains/facility/layout"
	"campus/shared/timezone"
)

// OccupancyIndex is the derived set of currently booked (resource, time)
// pairs for one facility. It is rebuilt from scratch on every fetch and
// never patched incrementally, so it cannot drift from server truth.
type OccupancyIndex struct {
	resources map[string]struct{}
	slots     map[string]struct{}
	total     int
}

// SlotKey builds the occupancy key for a resource at a local start hour,
// e.g. "IB101_14:00".
func SlotKey(label, hourLabel string) string {
	return label + "_" + hourLabel
}

// BuildOccupancyIndex decodes every reservation into occupancy keys.
// Records whose seat number does not resolve to a known label are
// logged and skipped; one bad record must never abort the rebuild.
func BuildOccupancyIndex(l layout.Layout, reservations []Reservation) OccupancyIndex {
	index := OccupancyIndex{
		resources: make(map[string]struct{}),
		slots:     make(map[string]struct{}),
		total:     l.Total(),
	}

	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}

		label, ok := l.IndexToLabel(r.SeatNumber)
		if !ok {
			log.Warn().
				Str("facilityId", l.FacilityID).
				Int("seatNumber", r.SeatNumber).
				Msg("skipping reservation with unknown seat number")

			continue
		}

		index.resources[label] = struct{}{}

		if l.Slotted() && !r.StartTime.IsZero() {
			index.slots[SlotKey(label, timezone.HourLabel(r.StartTime.Time()))] = struct{}{}
		}
	}

	return index
}

// ResourceOccupied reports whether a seat or room is booked at all.
// For seat facilities this is the whole answer: a seat reservation
// occupies the resource for its full fixed window starting now.
func (i OccupancyIndex) ResourceOccupied(label string) bool {
	_, ok := i.resources[label]

	return ok
}

// SlotOccupied reports whether a room is booked at a specific local
// start hour.
func (i OccupancyIndex) SlotOccupied(label, hourLabel string) bool {
	_, ok := i.slots[SlotKey(label, hourLabel)]

	return ok
}

// FreeCount returns how many resources carry no booking at all.
func (i OccupancyIndex) FreeCount() int {
	return i.total - len(i.resources)
}

// OccupiedCount returns how many resources carry at least one booking.
func (i OccupancyIndex) OccupiedCount() int {
	return len(i.resources)
}
