package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/credential"
	"github.com/ndtran/shoutbox/internal/model"
)

// State is the session lifecycle state. Protected views must render
// neither their authenticated nor unauthenticated form while loading.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Guard owns the process-wide authentication state: the persisted token
// pair, the resolved user profile, and the session state. All token
// mutation funnels through the guard's own methods plus the unauthorized
// hook it registers on the API client; other components only ever read
// the access token indirectly, by issuing requests through that client.
type Guard struct {
	client *api.Client
	creds  credential.Store

	mu    sync.Mutex
	state State
	user  *model.User

	// expiredCh delivers one event per global session reset so the UI
	// can route to the login view.
	expiredCh chan struct{}
}

// New creates a Guard in the loading state and registers it as the
// client's global unauthorized handler.
func New(client *api.Client, creds credential.Store) *Guard {
	g := &Guard{
		client:    client,
		creds:     creds,
		state:     StateLoading,
		expiredCh: make(chan struct{}, 1),
	}
	client.OnUnauthorized(g.handleUnauthorized)
	return g
}

// State returns the current session state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// User returns the resolved profile, or nil while loading or
// unauthenticated.
func (g *Guard) User() *model.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// SetUser replaces the cached profile after a profile edit. The session
// must already be authenticated.
func (g *Guard) SetUser(u *model.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateAuthenticated && u != nil {
		g.user = u
	}
}

// Expired exposes the stream of global session resets. The app listens
// on it and routes to the login view.
func (g *Guard) Expired() <-chan struct{} {
	return g.expiredCh
}

// Resolve performs the startup transition out of the loading state. If a
// persisted access token exists it is used to resolve the profile; any
// failure clears both tokens. The guard always leaves loading, whatever
// the outcome.
func (g *Guard) Resolve(ctx context.Context) State {
	token, err := g.creds.Get(credential.KeyAccessToken)
	if err != nil || token == "" {
		g.reset()
		return StateUnauthenticated
	}

	g.client.SetToken(token)

	user, err := g.client.Me(ctx)
	if err != nil {
		// Covers expiry: a rejected token already triggered the
		// unauthorized hook, but a network failure has not, so reset
		// explicitly rather than staying in loading.
		g.reset()
		return StateUnauthenticated
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.user = user
	g.mu.Unlock()
	return StateAuthenticated
}

// Login exchanges credentials for a token pair, persists both tokens, and
// resolves the profile. On any failure nothing is retained.
func (g *Guard) Login(ctx context.Context, email, password string) (*model.User, error) {
	pair, err := g.client.Login(ctx, api.Credentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return g.establish(ctx, pair)
}

// Register creates an account and establishes the session, with the same
// all-or-nothing behavior as Login.
func (g *Guard) Register(ctx context.Context, reg api.Registration) (*model.User, error) {
	pair, err := g.client.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return g.establish(ctx, pair)
}

// Logout clears both tokens and the profile. Idempotent.
func (g *Guard) Logout() {
	g.reset()
}

// establish persists the token pair and resolves the profile. Any
// failure along the way rolls the session back to unauthenticated with
// no partial token retained.
func (g *Guard) establish(ctx context.Context, pair *api.TokenPair) (*model.User, error) {
	if err := g.creds.Set(credential.KeyAccessToken, pair.AccessToken); err != nil {
		g.reset()
		return nil, fmt.Errorf("persisting access token: %w", err)
	}
	if err := g.creds.Set(credential.KeyRefreshToken, pair.RefreshToken); err != nil {
		g.reset()
		return nil, fmt.Errorf("persisting refresh token: %w", err)
	}

	g.client.SetToken(pair.AccessToken)

	user, err := g.client.Me(ctx)
	if err != nil {
		g.reset()
		return nil, err
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.user = user
	g.mu.Unlock()
	return user, nil
}

// handleUnauthorized is the single global 401 hook: both tokens are
// cleared atomically and an expiry event is emitted for the UI. A 401
// from a login or resolve attempt is already reported to its caller, so
// only an established session emits the event.
func (g *Guard) handleUnauthorized() {
	g.mu.Lock()
	wasAuthenticated := g.state == StateAuthenticated
	g.mu.Unlock()

	g.reset()

	if !wasAuthenticated {
		return
	}
	select {
	case g.expiredCh <- struct{}{}:
	default:
	}
}

// reset clears both tokens and the profile and marks the session
// unauthenticated. Safe to call in any state.
func (g *Guard) reset() {
	_ = g.creds.Delete(credential.KeyAccessToken)
	_ = g.creds.Delete(credential.KeyRefreshToken)
	g.client.SetToken("")

	g.mu.Lock()
	g.state = StateUnauthenticated
	g.user = nil
	g.mu.Unlock()
}
