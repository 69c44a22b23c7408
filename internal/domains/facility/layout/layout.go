// Package layout is the pure mapping between a facility's human-facing
// resource labels and the backend's 1-based integer seat numbers.
//
// Seat facilities are fixed rectangular grids whose labels combine a row
// letter with a 1-based column number ("B4"). Room facilities are
// ordered row-groups of named rooms whose flattened position gives the
// integer. Both directions are total inverse functions over their valid
// domains; everything outside the domain reports ok=false instead of
// guessing.
package layout

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	Seats Kind = iota + 1
	Rooms
)

// Layout describes one facility's spatial and temporal grid. The zero
// value is not usable; obtain instances from ForFacility.
type Layout struct {
	FacilityID string
	Kind       Kind

	// Seats
	GridRows int
	GridCols int

	// Rooms
	RoomRows [][]string

	// Operating window, local civil hours.
	OpenHour  int
	CloseHour int
	SlotHours int
}

// Slotted reports whether reservations pick a discrete start slot.
// Seat facilities reserve a fixed window starting now instead.
func (l Layout) Slotted() bool {
	return l.Kind == Rooms
}

// Total returns the number of reservable resources.
func (l Layout) Total() int {
	if l.Kind == Seats {
		return l.GridRows * l.GridCols
	}

	total := 0
	for _, row := range l.RoomRows {
		total += len(row)
	}

	return total
}

// IndexToLabel resolves a backend seat number to its label. ok is false
// when index is outside [1, Total()].
func (l Layout) IndexToLabel(index int) (string, bool) {
	if index < 1 || index > l.Total() {
		return "", false
	}

	if l.Kind == Seats {
		rowIndex := (index - 1) / l.GridCols
		colIndex := (index-1)%l.GridCols + 1

		return fmt.Sprintf("%c%d", 'A'+rowIndex, colIndex), true
	}

	position := index
	for _, row := range l.RoomRows {
		if position <= len(row) {
			return row[position-1], true
		}

		position -= len(row)
	}

	return "", false
}

// LabelToIndex resolves a label to its backend seat number. ok is false
// when the label does not belong to this facility.
func (l Layout) LabelToIndex(label string) (int, bool) {
	if l.Kind == Seats {
		return l.seatLabelToIndex(label)
	}

	index := 1
	for _, row := range l.RoomRows {
		for _, room := range row {
			if room == label {
				return index, true
			}

			index++
		}
	}

	return 0, false
}

func (l Layout) seatLabelToIndex(label string) (int, bool) {
	if len(label) < 2 {
		return 0, false
	}

	rowIndex := int(label[0] - 'A')
	if rowIndex < 0 || rowIndex >= l.GridRows {
		return 0, false
	}

	col, err := strconv.Atoi(label[1:])
	if err != nil || col < 1 || col > l.GridCols {
		return 0, false
	}

	return rowIndex*l.GridCols + col, true
}

// LabelRows returns the labels arranged by display row.
func (l Layout) LabelRows() [][]string {
	if l.Kind == Rooms {
		return l.RoomRows
	}

	rows := make([][]string, l.GridRows)
	for r := range rows {
		row := make([]string, l.GridCols)
		for c := range row {
			row[c] = fmt.Sprintf("%c%d", 'A'+r, c+1)
		}

		rows[r] = row
	}

	return rows
}

// Labels returns every label in seat-number order.
func (l Layout) Labels() []string {
	labels := make([]string, 0, l.Total())
	for _, row := range l.LabelRows() {
		labels = append(labels, row...)
	}

	return labels
}

// TimeSlots generates the selectable start labels within the operating
// window: from the open hour, stepping by the slot length, keeping only
// starts whose full slot fits before close.
func (l Layout) TimeSlots() []string {
	if !l.Slotted() {
		return nil
	}

	slots := []string{}
	for cur := l.OpenHour; cur+l.SlotHours <= l.CloseHour; cur += l.SlotHours {
		slots = append(slots, fmt.Sprintf("%02d:00", cur))
	}

	return slots
}
