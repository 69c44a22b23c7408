package dto

import (
	"campus/internal/domains/facility/layout"
	"campus/internal/domains/facility/model"
)

type FacilityResponse struct {
	ID                   string `json:"facilityId"`
	Name                 string `json:"name"`
	Category             string `json:"category"`
	OperatingHours       string `json:"operatingHours"`
	CurrentCount         int    `json:"currentCount"`
	MaxCount             int    `json:"maxCount"`
	CongestionLevel      string `json:"congestionLevel"`
	AvailableReservation bool   `json:"availableReservation"`
	Address              string `json:"address"`
	BuildingNumber       string `json:"buildingNumber"`
	Notice               string `json:"notice"`
	Rules                string `json:"rules"`
	RoomBased            bool   `json:"roomBased"`
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.OperatingHours = model.OperatingHours
	r.CurrentCount = model.CurrentCount
	r.MaxCount = model.MaxCount
	r.AvailableReservation = model.AvailableReservation
	r.Address = model.Address
	r.BuildingNumber = model.BuildingNumber
	r.Notice = model.Notice
	r.Rules = model.Rules

	r.CongestionLevel = model.CongestionLevel
	if r.CongestionLevel == "" {
		r.CongestionLevel = CongestionLevel(model.CurrentCount, model.MaxCount)
	}

	if l, ok := layout.ForFacility(model.ID); ok {
		r.RoomBased = l.Slotted()
	}
}

// CongestionLevel derives the hint from the live counters when the
// backend did not provide one: at most 30% is relaxed, at most 70% is
// moderate, anything above is crowded.
func CongestionLevel(current, max int) string {
	if max <= 0 {
		return "low"
	}

	ratio := float64(current) / float64(max)

	switch {
	case ratio <= 0.3:
		return "low"
	case ratio <= 0.7:
		return "moderate"
	default:
		return "crowded"
	}
}
