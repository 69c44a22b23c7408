package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/jwt"
	otelMocks "campus/infras/otel/mocks"
	"campus/internal/domains/reservation/mocks"
	"campus/internal/domains/reservation/model"
	"campus/internal/domains/reservation/model/dto"
	"campus/internal/domains/reservation/service"
	"campus/internal/session"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
)

func signedInSession(t *testing.T) session.Provider {
	t.Helper()

	cfg := config.Get()
	jwtService := jwt.New(cfg)

	token, err := jwtService.Generate("2021001")
	assert.NoError(t, err)

	provider := session.NewProvider(session.NewMemoryStore(), jwtService)
	assert.NoError(t, provider.SignIn("2021001", token))

	return provider
}

func signedOutSession() session.Provider {
	return session.NewProvider(session.NewMemoryStore(), jwt.New(config.Get()))
}

func activeSeat(seatNumber int) model.Reservation {
	return model.Reservation{
		SeatNumber: seatNumber,
		Status:     constant.StatusActive,
		Active:     true,
	}
}

func TestReservationService_Occupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(1), activeSeat(10)}, nil)

	index, err := svc.Occupancy(context.Background(), "facility1")

	assert.NoError(t, err)
	assert.True(t, index.ResourceOccupied("A1"))
	assert.True(t, index.ResourceOccupied("B3"))
	assert.Equal(t, 47, index.FreeCount())
}

func TestReservationService_OccupancyUnknownFacility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	_, err := svc.Occupancy(context.Background(), "facility9")

	assert.Error(t, err)
}

func TestReservationService_OccupancyFetchFailureKeepsPreviousIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(1)}, nil)

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return(nil, errors.New("connection refused"))

	_, err := svc.Occupancy(context.Background(), "facility1")
	assert.NoError(t, err)

	index, err := svc.Occupancy(context.Background(), "facility1")

	// The error is surfaced, but the last good index is kept: a network
	// blip must not make every seat look free.
	assert.Error(t, err)
	assert.True(t, index.ResourceOccupied("A1"))
	assert.Equal(t, 1, index.OccupiedCount())
}

func TestReservationService_OccupancyFetchFailureWithoutPreviousIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return(nil, errors.New("connection refused"))

	index, err := svc.Occupancy(context.Background(), "facility1")

	assert.Error(t, err)
	assert.Equal(t, 0, index.OccupiedCount())
}

func TestReservationService_OccupancyStaleResponseDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	// The first fetch stalls until the second one has been applied, so
	// its response arrives out of order.
	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		DoAndReturn(func(context.Context, string) ([]model.Reservation, error) {
			close(firstStarted)
			<-release

			return []model.Reservation{activeSeat(1)}, nil
		})

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(2)}, nil)

	var wg sync.WaitGroup
	var staleIndex model.OccupancyIndex
	var staleErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		staleIndex, staleErr = svc.Occupancy(context.Background(), "facility1")
	}()

	<-firstStarted

	fresh, err := svc.Occupancy(context.Background(), "facility1")
	assert.NoError(t, err)
	assert.True(t, fresh.ResourceOccupied("A2"))

	close(release)
	wg.Wait()

	// The older response is discarded and the caller observes the
	// fresher server truth instead.
	assert.NoError(t, staleErr)
	assert.True(t, staleIndex.ResourceOccupied("A2"))
	assert.False(t, staleIndex.ResourceOccupied("A1"))
}

func TestReservationService_ReserveSucceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Reservation{ID: "res-1"}, nil)

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(10)}, nil).
		Times(1)

	result, err := svc.Reserve(context.Background(), dto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	})

	assert.NoError(t, err)
	assert.Equal(t, service.StateSucceeded, result.State)
	assert.True(t, result.SelectionCleared)
	assert.True(t, result.Index.ResourceOccupied("B3"))
}

func TestReservationService_ReserveConflicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Reservation{}, failure.Conflict("seat taken"))

	// The conflict triggers exactly one re-fetch so the contested seat
	// renders occupied.
	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(10)}, nil).
		Times(1)

	result, err := svc.Reserve(context.Background(), dto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	})

	// A conflict is a normal outcome, not an error.
	assert.NoError(t, err)
	assert.Equal(t, service.StateConflicted, result.State)
	assert.True(t, result.Index.ResourceOccupied("B3"))
	assert.True(t, result.SelectionCleared)
	assert.NotEqual(t, "", result.Notice)
}

func TestReservationService_ReserveConflictedSelectionStillFree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Reservation{}, failure.Conflict("user already has an active reservation"))

	// The re-fetch shows the picked seat still free: the conflict was
	// about the user, not the seat, so the selection is kept.
	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{}, nil).
		Times(1)

	result, err := svc.Reserve(context.Background(), dto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	})

	assert.NoError(t, err)
	assert.Equal(t, service.StateConflicted, result.State)
	assert.False(t, result.SelectionCleared)
}

func TestReservationService_ReserveFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Reservation{}, failure.Unavailable(errors.New("connection refused")))

	// No re-fetch on a transient failure; the previous index stands.
	result, err := svc.Reserve(context.Background(), dto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	})

	assert.Error(t, err)
	assert.Equal(t, service.StateFailed, result.State)
	assert.False(t, result.SelectionCleared)
}

func TestReservationService_ReservePreconditions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)

	tests := []struct {
		name    string
		svc     service.Reservation
		sel     dto.Selection
		wantErr error
	}{
		{
			name:    "not signed in",
			svc:     service.New(mockRepo, signedOutSession(), config.Get(), otelMocks.NewOtel()),
			sel:     dto.Selection{FacilityID: "facility1", Label: "B3"},
			wantErr: failure.NotAuthenticatedError,
		},
		{
			name:    "nothing selected",
			svc:     service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel()),
			sel:     dto.Selection{FacilityID: "facility1"},
			wantErr: failure.SelectionIncompleteError,
		},
		{
			name:    "room without slot",
			svc:     service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel()),
			sel:     dto.Selection{FacilityID: "facility4", Label: "IB101"},
			wantErr: failure.SelectionIncompleteError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Nothing is sent: no repository expectations are set.
			result, err := tt.svc.Reserve(context.Background(), tt.sel)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, service.StateIdle, result.State)
		})
	}
}

func TestReservationService_ReserveUnknownFacility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	result, err := svc.Reserve(context.Background(), dto.Selection{FacilityID: "facility9", Label: "A1"})

	assert.Error(t, err)
	assert.Equal(t, service.StateIdle, result.State)
}

func TestReservationService_Mine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	start := time.Date(2025, 2, 10, 5, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().
		ListForUser(gomock.Any(), "2021001").
		Return([]model.Reservation{
			{ID: "res-2", FacilityID: "facility1", SeatNumber: 1, StartTime: gDto.FromTime(start), EndTime: gDto.FromTime(start.Add(2 * time.Hour)), Status: constant.StatusActive, Active: true},
			{ID: "res-1", FacilityID: "facility1", SeatNumber: 2, StartTime: gDto.FromTime(start), EndTime: gDto.FromTime(start.Add(2 * time.Hour)), Status: constant.StatusCancelled, Active: false},
		}, nil)

	mine, err := svc.Mine(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, mine.Active)
	assert.Equal(t, "res-2", mine.Active.ID)
	assert.Len(t, mine.Past, 1)
}

func TestReservationService_MineNotSignedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedOutSession(), config.Get(), otelMocks.NewOtel())

	_, err := svc.Mine(context.Background())

	assert.ErrorIs(t, err, failure.NotAuthenticatedError)
}

func TestReservationService_Extend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	start := time.Date(2025, 2, 10, 5, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().
		Extend(gomock.Any(), "res-1").
		Return(model.Reservation{
			ID:         "res-1",
			FacilityID: "facility1",
			SeatNumber: 1,
			StartTime:  gDto.FromTime(start),
			EndTime:    gDto.FromTime(start.Add(4 * time.Hour)),
			Status:     constant.StatusActive,
			Active:     true,
		}, nil)

	// A successful extension resynchronizes the facility's occupancy.
	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{activeSeat(1)}, nil)

	res, err := svc.Extend(context.Background(), "res-1")

	assert.NoError(t, err)
	assert.Equal(t, "A1", res.Label)
	assert.Equal(t, "14:00 - 18:00", res.TimeRange)
}

func TestReservationService_ExtendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Extend(gomock.Any(), "res-1").
		Return(model.Reservation{}, failure.Conflict("reservation is no longer active"))

	_, err := svc.Extend(context.Background(), "res-1")

	assert.Error(t, err)
}

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Cancel(gomock.Any(), "res-1").
		Return(nil)

	mockRepo.EXPECT().
		ListForFacility(gomock.Any(), "facility1").
		Return([]model.Reservation{}, nil)

	assert.NoError(t, svc.Cancel(context.Background(), "res-1", "facility1"))
}

func TestReservationService_CancelWithoutFacility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, signedInSession(t), config.Get(), otelMocks.NewOtel())

	// No facility id means no occupancy refresh.
	mockRepo.EXPECT().
		Cancel(gomock.Any(), "res-1").
		Return(nil)

	assert.NoError(t, svc.Cancel(context.Background(), "res-1", ""))
}
