package stub_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"campus/config"
	"campus/infras/jwt"
	otelMocks "campus/infras/otel/mocks"
	"campus/infras/rest"
	facilityRepository "campus/internal/domains/facility/repository"
	facilityService "campus/internal/domains/facility/service"
	reservationDto "campus/internal/domains/reservation/model/dto"
	reservationRepository "campus/internal/domains/reservation/repository"
	reservationService "campus/internal/domains/reservation/service"
	userDto "campus/internal/domains/user/model/dto"
	userRepository "campus/internal/domains/user/repository"
	userService "campus/internal/domains/user/service"
	"campus/internal/session"
	"campus/internal/stub"
	"campus/shared/failure"
)

type client struct {
	session      session.Provider
	users        userService.Auth
	facilities   facilityService.Facility
	reservations reservationService.Reservation
}

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Get()
	server := stub.NewServer(cfg, stub.New(stub.NewStore(), jwt.New(cfg), otelMocks.NewOtel(), cfg))

	ts := httptest.NewServer(server.Mux())
	t.Cleanup(ts.Close)

	return ts
}

func newClient(t *testing.T, baseURL string) client {
	t.Helper()

	cfg := *config.Get()
	cfg.API.BaseURL = baseURL

	mockOtel := otelMocks.NewOtel()
	provider := session.NewProvider(session.NewMemoryStore(), jwt.New(&cfg))
	restClient := rest.New(&cfg, provider, mockOtel)

	return client{
		session:      provider,
		users:        userService.New(userRepository.New(restClient, mockOtel), provider, mockOtel),
		facilities:   facilityService.New(facilityRepository.New(restClient, mockOtel), mockOtel),
		reservations: reservationService.New(reservationRepository.New(restClient, mockOtel), provider, &cfg, mockOtel),
	}
}

func signUp(t *testing.T, c client, userID, name string) {
	t.Helper()

	ctx := context.Background()

	_, err := c.users.Register(ctx, userDto.RegisterRequest{
		UserID:   userID,
		Password: "secret",
		Name:     name,
	})
	assert.NoError(t, err)

	_, err = c.users.Login(ctx, userDto.LoginRequest{UserID: userID, Password: "secret"})
	assert.NoError(t, err)
	assert.Equal(t, userID, c.session.UserID())
}

func TestStub_LoginRejectsBadCredentials(t *testing.T) {
	ts := newStubServer(t)
	c := newClient(t, ts.URL)

	ctx := context.Background()

	_, err := c.users.Register(ctx, userDto.RegisterRequest{
		UserID:   "2021001",
		Password: "secret",
		Name:     "Test Student",
	})
	assert.NoError(t, err)

	_, err = c.users.Login(ctx, userDto.LoginRequest{UserID: "2021001", Password: "wrong"})
	assert.Error(t, err)
	assert.True(t, failure.IsNotAuthenticated(err))
	assert.Equal(t, "", c.session.UserID())
}

func TestStub_FacilityListing(t *testing.T) {
	ts := newStubServer(t)
	c := newClient(t, ts.URL)

	facilities, err := c.facilities.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, facilities, 5)

	detail, err := c.facilities.Get(context.Background(), "facility4")
	assert.NoError(t, err)
	assert.True(t, detail.RoomBased)
	assert.Equal(t, 9, detail.MaxCount)
}

func TestStub_RoomReservationLifecycle(t *testing.T) {
	ts := newStubServer(t)
	c := newClient(t, ts.URL)
	signUp(t, c, "2021001", "Test Student")

	ctx := context.Background()

	result, err := c.reservations.Reserve(ctx, reservationDto.Selection{
		FacilityID: "facility4",
		Label:      "IB101",
		Slot:       "14:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, reservationService.StateSucceeded, result.State)
	assert.True(t, result.SelectionCleared)
	assert.True(t, result.Index.SlotOccupied("IB101", "14:00"))

	mine, err := c.reservations.Mine(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, mine.Active)
	assert.Equal(t, "IB101", mine.Active.Label)

	res, err := c.reservations.Extend(ctx, mine.Active.ID)
	assert.NoError(t, err)
	assert.Equal(t, "IB101", res.Label)

	assert.NoError(t, c.reservations.Cancel(ctx, mine.Active.ID, "facility4"))

	index, err := c.reservations.Occupancy(ctx, "facility4")
	assert.NoError(t, err)
	assert.False(t, index.SlotOccupied("IB101", "14:00"))

	mine, err = c.reservations.Mine(ctx)
	assert.NoError(t, err)
	assert.Nil(t, mine.Active)
	assert.Len(t, mine.Past, 1)
}

func TestStub_ConflictOnContestedRoom(t *testing.T) {
	ts := newStubServer(t)

	first := newClient(t, ts.URL)
	signUp(t, first, "2021001", "First Student")

	second := newClient(t, ts.URL)
	signUp(t, second, "2021002", "Second Student")

	ctx := context.Background()
	sel := reservationDto.Selection{FacilityID: "facility4", Label: "IB101", Slot: "14:00"}

	result, err := first.reservations.Reserve(ctx, sel)
	assert.NoError(t, err)
	assert.Equal(t, reservationService.StateSucceeded, result.State)

	// The loser gets a conflict, not an error, and the re-fetched index
	// shows the contested slot as occupied.
	result, err = second.reservations.Reserve(ctx, sel)
	assert.NoError(t, err)
	assert.Equal(t, reservationService.StateConflicted, result.State)
	assert.True(t, result.Index.SlotOccupied("IB101", "14:00"))
	assert.True(t, result.SelectionCleared)
}

func TestStub_ConflictOnSecondActiveReservation(t *testing.T) {
	ts := newStubServer(t)
	c := newClient(t, ts.URL)
	signUp(t, c, "2021001", "Test Student")

	ctx := context.Background()

	result, err := c.reservations.Reserve(ctx, reservationDto.Selection{
		FacilityID: "facility1",
		Label:      "A1",
	})
	assert.NoError(t, err)
	assert.Equal(t, reservationService.StateSucceeded, result.State)

	// A second booking elsewhere trips the one-active-reservation rule.
	result, err = c.reservations.Reserve(ctx, reservationDto.Selection{
		FacilityID: "facility1",
		Label:      "B3",
	})
	assert.NoError(t, err)
	assert.Equal(t, reservationService.StateConflicted, result.State)

	// The picked seat itself is still free, so the selection is kept.
	assert.False(t, result.SelectionCleared)
}

func TestStub_ReservationRequiresAuth(t *testing.T) {
	ts := newStubServer(t)
	c := newClient(t, ts.URL)

	_, err := c.reservations.Reserve(context.Background(), reservationDto.Selection{
		FacilityID: "facility1",
		Label:      "A1",
	})

	assert.ErrorIs(t, err, failure.NotAuthenticatedError)

	_, err = c.reservations.Mine(context.Background())
	assert.ErrorIs(t, err, failure.NotAuthenticatedError)
}
