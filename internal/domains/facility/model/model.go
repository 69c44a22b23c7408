package model

const (
	EntityName = "facility"
)

// Facility mirrors the backend's facility records. List responses carry
// the identity and congestion hint; the detail endpoint fills in the
// address, rules and live occupancy counters.
type Facility struct {
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
	Image                string `json:"image"`
}
