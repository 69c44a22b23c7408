package model

import (
	"campus/shared/constant"
	gDto "campus/shared/dto"
)

const (
	EntityName = "reservation"
)

// Reservation mirrors the backend's reservation records. Times are UTC
// epoch pairs; seatNumber is the backend's 1-based integer encoding of a
// resource label.
type Reservation struct {
	ID         string         `json:"reservationId"`
	FacilityID string         `json:"facilityId"`
	UserID     string         `json:"userId"`
	SeatNumber int            `json:"seatNumber"`
	StartTime  gDto.Timestamp `json:"startTime"`
	EndTime    gDto.Timestamp `json:"endTime"`
	Status     string         `json:"status"`
	Active     bool           `json:"active"`
}

// IsCancelled reports whether the record no longer occupies its slot.
// The backend has been observed to leave active=true on some cancelled
// records, so the status marker and the flag are checked as a union.
func (r Reservation) IsCancelled() bool {
	return r.Status == constant.StatusCancelled || !r.Active
}
