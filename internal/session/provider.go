package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"campus/infras/jwt"
	"campus/shared/constant"
)

// Session is the resolved identity shared by every screen of the client.
type Session struct {
	UserID      string
	AccessToken string
}

// Provider is the single source of session state. Every part of the
// client reads identity through it instead of hitting the device store
// independently, which is what used to cause duplicate reads and
// races between screens.
type Provider interface {
	Current() Session
	UserID() string
	AccessToken() string
	Subscribe() <-chan Session
	SignIn(userID, token string) error
	SignOut() error
}

type providerImpl struct {
	store Store
	jwt   jwt.JWT

	mu          sync.RWMutex
	current     Session
	subscribers []chan Session
}

func NewProvider(store Store, jwtSvc jwt.JWT) Provider {
	p := &providerImpl{
		store: store,
		jwt:   jwtSvc,
	}

	userID, err := store.Get(constant.SessionKeyUserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load stored user id")
	}

	token, err := store.Get(constant.SessionKeyAccessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to load stored access token")
	}

	p.current = Session{UserID: userID, AccessToken: token}

	return p
}

func (p *providerImpl) Current() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.current
}

// UserID returns the resolved user identity, or "" when signed out or
// when the stored token has expired and a fresh login is required.
func (p *providerImpl) UserID() string {
	current := p.Current()

	if current.AccessToken != "" {
		if _, err := p.jwt.Peek(current.AccessToken); errors.Is(err, jwt.ErrExpiredToken) {
			log.Warn().Msg("stored access token has expired")

			return ""
		}
	}

	return current.UserID
}

func (p *providerImpl) AccessToken() string {
	return p.Current().AccessToken
}

// Subscribe returns a channel receiving every future session change.
// The channel is buffered; a slow consumer misses intermediate states
// but always observes the latest one eventually.
func (p *providerImpl) Subscribe() <-chan Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Session, 1)
	p.subscribers = append(p.subscribers, ch)

	return ch
}

func (p *providerImpl) SignIn(userID, token string) error {
	if err := p.store.Set(constant.SessionKeyUserID, userID); err != nil {
		return err
	}

	if err := p.store.Set(constant.SessionKeyAccessToken, token); err != nil {
		return err
	}

	p.publish(Session{UserID: userID, AccessToken: token})

	return nil
}

func (p *providerImpl) SignOut() error {
	if err := p.store.Delete(constant.SessionKeyUserID); err != nil {
		return err
	}

	if err := p.store.Delete(constant.SessionKeyAccessToken); err != nil {
		return err
	}

	p.publish(Session{})

	return nil
}

func (p *providerImpl) publish(next Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = next

	for _, ch := range p.subscribers {
		select {
		case ch <- next:
		default:
			// drop the stale value so the latest one fits
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}
