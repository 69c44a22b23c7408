package layout

// Compiled-in layouts per facility, matching the physical spaces. The
// backend only ever speaks in seat numbers; the shapes below are the
// client's knowledge of what those numbers mean.
var registry = map[string]Layout{
	"facility1": {
		FacilityID: "facility1",
		Kind:       Seats,
		GridRows:   7,
		GridCols:   7,
		OpenHour:   9,
		CloseHour:  21,
		SlotHours:  2,
	},
	"facility2": {
		FacilityID: "facility2",
		Kind:       Seats,
		GridRows:   7,
		GridCols:   7,
		OpenHour:   9,
		CloseHour:  21,
		SlotHours:  2,
	},
	"facility3": {
		FacilityID: "facility3",
		Kind:       Rooms,
		RoomRows: [][]string{
			{"그룹스터디실(3F-1)", "그룹스터디실(3F-2)", "그룹스터디실(4F)"},
			{"그룹스터디실(5F)", "그룹스터디실(6F)", "코워킹룸(3F)"},
			{"회의실(5F상상커먼스)"},
		},
		OpenHour:  9,
		CloseHour: 21,
		SlotHours: 2,
	},
	"facility4": {
		FacilityID: "facility4",
		Kind:       Rooms,
		RoomRows: [][]string{
			{"IB101", "IB102", "IB103"},
			{"IB104", "IB105", "IB106"},
			{"IB107", "IB108", "IB111"},
		},
		OpenHour:  9,
		CloseHour: 21,
		SlotHours: 2,
	},
	"facility5": {
		FacilityID: "facility5",
		Kind:       Rooms,
		RoomRows: [][]string{
			{"Challenge", "Collaboration", "Communication"},
			{"Convergence", "Creativity", "Critical Thinking"},
		},
		OpenHour:  9,
		CloseHour: 19,
		SlotHours: 2,
	},
}

// ForFacility returns the compiled-in layout for a facility id.
func ForFacility(facilityID string) (Layout, bool) {
	l, ok := registry[facilityID]

	return l, ok
}
