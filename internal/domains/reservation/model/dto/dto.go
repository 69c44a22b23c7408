package dto

import (
	"strconv"
	"strings"
	"time"

	"campus/internal/domains/facility/layout"
	"campus/internal/domains/reservation/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
)

// Selection is a user's pick on the grid. Slot is empty for seat
// facilities, which always reserve a fixed window starting now.
type Selection struct {
	FacilityID string
	Label      string
	Slot       string
}

type CreateReservationRequest struct {
	FacilityID string         `json:"facilityId" validate:"required"`
	UserID     string         `json:"userId"     validate:"required"`
	SeatNumber int            `json:"seatNumber" validate:"required,gte=1"`
	StartTime  gDto.Timestamp `json:"startTime"`
	EndTime    gDto.Timestamp `json:"endTime"`
}

// BuildRoomRequest encodes a room/slot selection for today's local civil
// date. A "14:00" pick means 14:00 campus time regardless of where the
// device thinks it is: the local wall clock is composed in the fixed
// campus zone and only then converted to the UTC epoch pair.
func BuildRoomRequest(l layout.Layout, sel Selection, userID string, now time.Time) (CreateReservationRequest, error) {
	if userID == constant.Empty {
		return CreateReservationRequest{}, failure.NotAuthenticatedError
	}

	if sel.Label == constant.Empty || sel.Slot == constant.Empty {
		return CreateReservationRequest{}, failure.SelectionIncompleteError
	}

	seatNumber, ok := l.LabelToIndex(sel.Label)
	if !ok {
		return CreateReservationRequest{}, failure.BadRequestFromString("unknown room: " + sel.Label) //nolint:wrapcheck
	}

	hour, minute, err := parseSlot(sel.Slot)
	if err != nil {
		return CreateReservationRequest{}, err
	}

	year, month, day := timezone.ToAppTime(now).Date()

	start := time.Date(year, month, day, hour, minute, 0, 0, timezone.GetLocation())
	end := start.Add(time.Duration(l.SlotHours) * time.Hour)

	return CreateReservationRequest{
		FacilityID: sel.FacilityID,
		UserID:     userID,
		SeatNumber: seatNumber,
		StartTime:  gDto.FromTime(start),
		EndTime:    gDto.FromTime(end),
	}, nil
}

// BuildSeatRequest encodes an immediate seat pick: the window starts now
// and runs for the facility's fixed hold length.
func BuildSeatRequest(l layout.Layout, sel Selection, userID string, holdHours int, now time.Time) (CreateReservationRequest, error) {
	if userID == constant.Empty {
		return CreateReservationRequest{}, failure.NotAuthenticatedError
	}

	if sel.Label == constant.Empty {
		return CreateReservationRequest{}, failure.SelectionIncompleteError
	}

	seatNumber, ok := l.LabelToIndex(sel.Label)
	if !ok {
		return CreateReservationRequest{}, failure.BadRequestFromString("unknown seat: " + sel.Label) //nolint:wrapcheck
	}

	return CreateReservationRequest{
		FacilityID: sel.FacilityID,
		UserID:     userID,
		SeatNumber: seatNumber,
		StartTime:  gDto.FromTime(now),
		EndTime:    gDto.FromTime(now.Add(time.Duration(holdHours) * time.Hour)),
	}, nil
}

func parseSlot(slot string) (hour, minute int, err error) {
	parts := strings.SplitN(slot, ":", 2)
	if len(parts) != 2 {
		return 0, 0, failure.BadRequestFromString("invalid time slot: " + slot) //nolint:wrapcheck
	}

	hour, hourErr := strconv.Atoi(parts[0])
	minute, minuteErr := strconv.Atoi(parts[1])

	if hourErr != nil || minuteErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, failure.BadRequestFromString("invalid time slot: " + slot) //nolint:wrapcheck
	}

	return hour, minute, nil
}

type ReservationResponse struct {
	ID         string `json:"reservationId"`
	FacilityID string `json:"facilityId"`
	Label      string `json:"label"`
	Date       string `json:"date"`
	TimeRange  string `json:"timeRange"`
	Status     string `json:"status"`
	Active     bool   `json:"active"`
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.FacilityID = model.FacilityID
	r.Status = model.Status
	r.Active = model.Active

	if l, ok := layout.ForFacility(model.FacilityID); ok {
		if label, ok := l.IndexToLabel(model.SeatNumber); ok {
			r.Label = label
		}
	}

	if r.Label == constant.Empty {
		r.Label = "#" + strconv.Itoa(model.SeatNumber)
	}

	start := model.StartTime.Time()
	end := model.EndTime.Time()

	r.Date = timezone.Format(start, constant.DateFormat)
	r.TimeRange = timezone.Format(start, constant.TimeFormat) + " - " + timezone.Format(end, constant.TimeFormat)
}

// MyReservationsResponse partitions a user's records the way the
// my-page renders them: at most one ongoing reservation, everything
// else history.
type MyReservationsResponse struct {
	Active *ReservationResponse  `json:"active,omitempty"`
	Past   []ReservationResponse `json:"past"`
}

func (r *MyReservationsResponse) FromModels(models []model.Reservation) {
	r.Past = []ReservationResponse{}

	for _, m := range models {
		res := ReservationResponse{}
		res.FromModel(m)

		if r.Active == nil && !m.IsCancelled() {
			r.Active = &res

			continue
		}

		r.Past = append(r.Past, res)
	}
}
