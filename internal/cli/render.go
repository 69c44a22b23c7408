package cli

import (
	"fmt"
	"strings"

	"campus/internal/domains/facility/layout"
	"campus/internal/domains/reservation/model"
)

// renderGrid draws the occupancy view for a facility. Seat facilities
// render as the physical grid with taken seats crossed out; room
// facilities render one line per room with its free start slots.
func renderGrid(l layout.Layout, index model.OccupancyIndex) string {
	if l.Slotted() {
		return renderRooms(l, index)
	}

	return renderSeats(l, index)
}

func renderSeats(l layout.Layout, index model.OccupancyIndex) string {
	var b strings.Builder

	for _, row := range l.LabelRows() {
		for _, label := range row {
			if index.ResourceOccupied(label) {
				b.WriteString("[  x] ")

				continue
			}

			fmt.Fprintf(&b, "[%3s] ", label)
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func renderRooms(l layout.Layout, index model.OccupancyIndex) string {
	var b strings.Builder

	width := 0
	for _, label := range l.Labels() {
		if len(label) > width {
			width = len(label)
		}
	}

	slots := l.TimeSlots()

	for _, label := range l.Labels() {
		fmt.Fprintf(&b, "%-*s ", width, label)

		for _, slot := range slots {
			if index.SlotOccupied(label, slot) {
				b.WriteString(" --:--")

				continue
			}

			b.WriteString(" " + slot)
		}

		b.WriteByte('\n')
	}

	return b.String()
}
