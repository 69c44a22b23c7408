package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campus/internal/domains/facility/layout"
	"campus/internal/domains/reservation/model"
	"campus/internal/domains/reservation/model/dto"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
)

func TestBuildRoomRequest(t *testing.T) {
	l, _ := layout.ForFacility("facility4")

	// 01:00 UTC is 10:00 on campus, so "today" is still Feb 10 there.
	now := time.Date(2025, 2, 10, 1, 0, 0, 0, time.UTC)

	req, err := dto.BuildRoomRequest(l, dto.Selection{
		FacilityID: "facility4",
		Label:      "IB101",
		Slot:       "14:00",
	}, "2021001", now)

	assert.NoError(t, err)
	assert.Equal(t, "facility4", req.FacilityID)
	assert.Equal(t, "2021001", req.UserID)
	assert.Equal(t, 1, req.SeatNumber)

	// 14:00 campus time on Feb 10 is 05:00 UTC.
	expectedStart := time.Date(2025, 2, 10, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart.Unix(), req.StartTime.Seconds)
	assert.Equal(t, int32(0), req.StartTime.Nanos)
	assert.Equal(t, int64(7200), req.EndTime.Seconds-req.StartTime.Seconds)
}

func TestBuildRoomRequest_MorningSlot(t *testing.T) {
	l, _ := layout.ForFacility("facility4")

	now := time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC)

	req, err := dto.BuildRoomRequest(l, dto.Selection{
		FacilityID: "facility4",
		Label:      "IB101",
		Slot:       "09:00",
	}, "2021001", now)

	assert.NoError(t, err)

	// 09:00 campus time on Mar 10 is midnight UTC of the same date.
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix(), req.StartTime.Seconds)
	assert.Equal(t, req.StartTime.Seconds+7200, req.EndTime.Seconds)
}

func TestBuildRoomRequest_DeviceDateIrrelevant(t *testing.T) {
	l, _ := layout.ForFacility("facility4")

	// 16:00 UTC on Feb 10 is already Feb 11 on campus; the slot must
	// land on the campus civil date, not the device's.
	now := time.Date(2025, 2, 10, 16, 0, 0, 0, time.UTC)

	req, err := dto.BuildRoomRequest(l, dto.Selection{
		FacilityID: "facility4",
		Label:      "IB102",
		Slot:       "09:00",
	}, "2021001", now)

	assert.NoError(t, err)

	expectedStart := time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart.Unix(), req.StartTime.Seconds)
}

func TestBuildRoomRequest_Preconditions(t *testing.T) {
	l, _ := layout.ForFacility("facility4")
	now := time.Date(2025, 2, 10, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sel      dto.Selection
		userID   string
		expected error
	}{
		{
			name:     "not signed in",
			sel:      dto.Selection{FacilityID: "facility4", Label: "IB101", Slot: "14:00"},
			userID:   "",
			expected: failure.NotAuthenticatedError,
		},
		{
			name:     "no room picked",
			sel:      dto.Selection{FacilityID: "facility4", Slot: "14:00"},
			userID:   "2021001",
			expected: failure.SelectionIncompleteError,
		},
		{
			name:     "no slot picked",
			sel:      dto.Selection{FacilityID: "facility4", Label: "IB101"},
			userID:   "2021001",
			expected: failure.SelectionIncompleteError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dto.BuildRoomRequest(l, tt.sel, tt.userID, now)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestBuildRoomRequest_InvalidInput(t *testing.T) {
	l, _ := layout.ForFacility("facility4")
	now := time.Date(2025, 2, 10, 1, 0, 0, 0, time.UTC)

	_, err := dto.BuildRoomRequest(l, dto.Selection{FacilityID: "facility4", Label: "IB999", Slot: "14:00"}, "2021001", now)
	assert.Error(t, err)

	for _, slot := range []string{"14", "xx:00", "25:00", "14:99"} {
		_, err := dto.BuildRoomRequest(l, dto.Selection{FacilityID: "facility4", Label: "IB101", Slot: slot}, "2021001", now)
		assert.Error(t, err, "slot %q", slot)
	}
}

func TestBuildSeatRequest(t *testing.T) {
	l, _ := layout.ForFacility("facility1")
	now := time.Date(2025, 2, 10, 1, 30, 0, 0, time.UTC)

	req, err := dto.BuildSeatRequest(l, dto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	}, "2021001", 2, now)

	assert.NoError(t, err)
	assert.Equal(t, 10, req.SeatNumber)
	assert.Equal(t, now.Unix(), req.StartTime.Seconds)
	assert.Equal(t, int64(7200), req.EndTime.Seconds-req.StartTime.Seconds)
}

func TestBuildSeatRequest_Preconditions(t *testing.T) {
	l, _ := layout.ForFacility("facility1")
	now := time.Date(2025, 2, 10, 1, 30, 0, 0, time.UTC)

	_, err := dto.BuildSeatRequest(l, dto.Selection{FacilityID: "facility1", Label: "A1"}, "", 2, now)
	assert.ErrorIs(t, err, failure.NotAuthenticatedError)

	_, err = dto.BuildSeatRequest(l, dto.Selection{FacilityID: "facility1"}, "2021001", 2, now)
	assert.ErrorIs(t, err, failure.SelectionIncompleteError)
}

func TestReservationResponse_FromModel(t *testing.T) {
	start := time.Date(2025, 2, 10, 5, 0, 0, 0, time.UTC)

	record := model.Reservation{
		ID:         "res-1",
		FacilityID: "facility4",
		SeatNumber: 1,
		StartTime:  gDto.FromTime(start),
		EndTime:    gDto.FromTime(start.Add(2 * time.Hour)),
		Status:     constant.StatusActive,
		Active:     true,
	}

	res := dto.ReservationResponse{}
	res.FromModel(record)

	assert.Equal(t, "IB101", res.Label)
	assert.Equal(t, "2025-02-10", res.Date)
	assert.Equal(t, "14:00 - 16:00", res.TimeRange)
}

func TestMyReservationsResponse_Partition(t *testing.T) {
	start := time.Date(2025, 2, 10, 5, 0, 0, 0, time.UTC)

	records := []model.Reservation{
		{ID: "res-3", FacilityID: "facility1", SeatNumber: 1, StartTime: gDto.FromTime(start), EndTime: gDto.FromTime(start.Add(2 * time.Hour)), Status: constant.StatusCancelled, Active: false},
		{ID: "res-2", FacilityID: "facility1", SeatNumber: 2, StartTime: gDto.FromTime(start), EndTime: gDto.FromTime(start.Add(2 * time.Hour)), Status: constant.StatusActive, Active: true},
		{ID: "res-1", FacilityID: "facility1", SeatNumber: 3, StartTime: gDto.FromTime(start), EndTime: gDto.FromTime(start.Add(2 * time.Hour)), Status: constant.StatusCancelled, Active: false},
	}

	res := dto.MyReservationsResponse{}
	res.FromModels(records)

	assert.NotNil(t, res.Active)
	assert.Equal(t, "res-2", res.Active.ID)
	assert.Len(t, res.Past, 2)
}

func TestMyReservationsResponse_NoActive(t *testing.T) {
	res := dto.MyReservationsResponse{}
	res.FromModels([]model.Reservation{
		{ID: "res-1", FacilityID: "facility1", SeatNumber: 1, Status: constant.StatusCancelled, Active: false},
	})

	assert.Nil(t, res.Active)
	assert.Len(t, res.Past, 1)
}
