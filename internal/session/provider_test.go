package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campus/config"
	"campus/infras/jwt"
	"campus/internal/session"
	"campus/shared/constant"
)

func TestProvider_SignInSignOut(t *testing.T) {
	jwtService := jwt.New(config.Get())
	provider := session.NewProvider(session.NewMemoryStore(), jwtService)

	assert.Equal(t, "", provider.UserID())

	token, err := jwtService.Generate("2021001")
	assert.NoError(t, err)

	assert.NoError(t, provider.SignIn("2021001", token))
	assert.Equal(t, "2021001", provider.UserID())
	assert.Equal(t, token, provider.AccessToken())

	assert.NoError(t, provider.SignOut())
	assert.Equal(t, "", provider.UserID())
	assert.Equal(t, "", provider.AccessToken())
}

func TestProvider_LoadsPersistedState(t *testing.T) {
	jwtService := jwt.New(config.Get())

	token, err := jwtService.Generate("2021001")
	assert.NoError(t, err)

	store := session.NewMemoryStore()
	assert.NoError(t, store.Set(constant.SessionKeyUserID, "2021001"))
	assert.NoError(t, store.Set(constant.SessionKeyAccessToken, token))

	provider := session.NewProvider(store, jwtService)

	assert.Equal(t, "2021001", provider.UserID())
}

func TestProvider_ExpiredStoredToken(t *testing.T) {
	cfg := *config.Get()
	cfg.JWT.AccessExpireMin = -10

	jwtService := jwt.New(&cfg)

	expired, err := jwtService.Generate("2021001")
	assert.NoError(t, err)

	provider := session.NewProvider(session.NewMemoryStore(), jwt.New(config.Get()))
	assert.NoError(t, provider.SignIn("2021001", expired))

	// An expired stored token means a fresh login is required.
	assert.Equal(t, "", provider.UserID())
	assert.Equal(t, expired, provider.AccessToken())
}

func TestProvider_Subscribe(t *testing.T) {
	jwtService := jwt.New(config.Get())
	provider := session.NewProvider(session.NewMemoryStore(), jwtService)

	updates := provider.Subscribe()

	token, err := jwtService.Generate("2021001")
	assert.NoError(t, err)
	assert.NoError(t, provider.SignIn("2021001", token))

	next := <-updates
	assert.Equal(t, "2021001", next.UserID)

	assert.NoError(t, provider.SignOut())

	next = <-updates
	assert.Equal(t, "", next.UserID)
}

func TestProvider_SubscribeLatestWins(t *testing.T) {
	jwtService := jwt.New(config.Get())
	provider := session.NewProvider(session.NewMemoryStore(), jwtService)

	updates := provider.Subscribe()

	token, err := jwtService.Generate("2021001")
	assert.NoError(t, err)

	// Two changes without a read in between: the slow consumer only
	// observes the latest state.
	assert.NoError(t, provider.SignIn("2021001", token))
	assert.NoError(t, provider.SignOut())

	next := <-updates
	assert.Equal(t, "", next.UserID)
}

func TestFileStore_RoundTrip(t *testing.T) {
	cfg := *config.Get()
	cfg.Session.Dir = t.TempDir()

	store, err := session.NewFileStore(&cfg)
	assert.NoError(t, err)

	assert.NoError(t, store.Set("key", "value"))

	value, err := store.Get("key")
	assert.NoError(t, err)
	assert.Equal(t, "value", value)

	assert.NoError(t, store.Delete("key"))

	value, err = store.Get("key")
	assert.NoError(t, err)
	assert.Equal(t, "", value)
}
