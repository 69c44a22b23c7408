package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"campus/shared/constant"
)

func TestDecodeFacilityReservations_RecordList(t *testing.T) {
	raw := json.RawMessage(`[
		{"reservationId":"res-1","facilityId":"facility1","seatNumber":3,"status":"ACTIVE","active":true},
		{"reservationId":"res-2","facilityId":"facility1","seatNumber":7,"status":"취소","active":false}
	]`)

	records, err := decodeFacilityReservations(raw)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 3, records[0].SeatNumber)
	assert.False(t, records[0].IsCancelled())
	assert.True(t, records[1].IsCancelled())
}

func TestDecodeFacilityReservations_BareSeatNumbers(t *testing.T) {
	// The endpoint's earlier payload shape: just the occupied numbers.
	raw := json.RawMessage(`[3, 7, 12]`)

	records, err := decodeFacilityReservations(raw)

	assert.NoError(t, err)
	assert.Len(t, records, 3)

	for i, expected := range []int{3, 7, 12} {
		assert.Equal(t, expected, records[i].SeatNumber)
		assert.Equal(t, constant.StatusActive, records[i].Status)
		assert.True(t, records[i].Active)
	}
}

func TestDecodeFacilityReservations_Empty(t *testing.T) {
	records, err := decodeFacilityReservations(nil)

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeFacilityReservations_Unrecognized(t *testing.T) {
	_, err := decodeFacilityReservations(json.RawMessage(`{"not":"a list"}`))

	assert.Error(t, err)
}
