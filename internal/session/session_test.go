package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/credential"
)

// memStore is an in-memory credential.Store for tests.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, error) {
	return s.values[key], nil
}

func (s *memStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

// newBackend serves /auth/login and /auth/me, accepting only the given
// token.
func newBackend(t *testing.T, validToken string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"` + validToken + `","refresh_token":"refresh-1"}`))
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		w.Write([]byte(`{"id":1,"email":"dana@example.com","name":"Dana","role":"employee"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveWithoutToken(t *testing.T) {
	srv := newBackend(t, "good")
	guard := New(api.NewClient(srv.URL), newMemStore())

	if guard.State() != StateLoading {
		t.Fatalf("initial state = %v, want loading", guard.State())
	}

	state := guard.Resolve(context.Background())
	if state != StateUnauthenticated {
		t.Errorf("Resolve = %v, want unauthenticated", state)
	}
	if guard.User() != nil {
		t.Error("no user expected without a session")
	}
}

func TestResolveWithValidToken(t *testing.T) {
	srv := newBackend(t, "good")
	creds := newMemStore()
	creds.Set(credential.KeyAccessToken, "good")

	guard := New(api.NewClient(srv.URL), creds)

	if state := guard.Resolve(context.Background()); state != StateAuthenticated {
		t.Fatalf("Resolve = %v, want authenticated", state)
	}
	user := guard.User()
	if user == nil || user.Name != "Dana" {
		t.Errorf("User = %+v", user)
	}
}

func TestResolveWithRejectedTokenClearsBoth(t *testing.T) {
	srv := newBackend(t, "good")
	creds := newMemStore()
	creds.Set(credential.KeyAccessToken, "stale")
	creds.Set(credential.KeyRefreshToken, "stale-refresh")

	guard := New(api.NewClient(srv.URL), creds)

	// Must leave loading whatever happens, never hang there.
	if state := guard.Resolve(context.Background()); state != StateUnauthenticated {
		t.Fatalf("Resolve = %v, want unauthenticated", state)
	}
	if v, _ := creds.Get(credential.KeyAccessToken); v != "" {
		t.Error("access token not cleared")
	}
	if v, _ := creds.Get(credential.KeyRefreshToken); v != "" {
		t.Error("refresh token not cleared")
	}
}

func TestLoginPersistsBothTokens(t *testing.T) {
	srv := newBackend(t, "good")
	creds := newMemStore()
	guard := New(api.NewClient(srv.URL), creds)
	guard.Resolve(context.Background())

	user, err := guard.Login(context.Background(), "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || user.ID != 1 {
		t.Errorf("Login user = %+v", user)
	}
	if guard.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", guard.State())
	}
	if v, _ := creds.Get(credential.KeyAccessToken); v != "good" {
		t.Errorf("access token = %q", v)
	}
	if v, _ := creds.Get(credential.KeyRefreshToken); v != "refresh-1" {
		t.Errorf("refresh token = %q", v)
	}
}

func TestLoginRejectedLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	creds := newMemStore()
	guard := New(api.NewClient(srv.URL), creds)

	if _, err := guard.Login(context.Background(), "dana@example.com", "wrong"); !api.IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if guard.State() == StateAuthenticated {
		t.Error("failed login must not authenticate")
	}
	if len(creds.values) != 0 {
		t.Errorf("tokens persisted after failed login: %v", creds.values)
	}
}

func TestLoginRejectedEmitsNoExpiryEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	guard := New(api.NewClient(srv.URL), newMemStore())
	guard.Resolve(context.Background())

	if _, err := guard.Login(context.Background(), "dana@example.com", "wrong"); !api.IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}

	// The caller already sees the failure; there was no session to expire.
	select {
	case <-guard.Expired():
		t.Error("failed login emitted an expiry event")
	default:
	}
}

func TestMidSessionExpiry(t *testing.T) {
	srv := newBackend(t, "good")
	creds := newMemStore()
	client := api.NewClient(srv.URL)
	guard := New(client, creds)

	if _, err := guard.Login(context.Background(), "dana@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Any 401 on any call fires the single global hook.
	client.SetToken("expired")
	if err := client.Get(context.Background(), "/auth/me", nil); !api.IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}

	if guard.State() != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated after 401", guard.State())
	}
	if len(creds.values) != 0 {
		t.Errorf("tokens not cleared: %v", creds.values)
	}

	select {
	case <-guard.Expired():
	default:
		t.Error("expected an expiry event")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	srv := newBackend(t, "good")
	creds := newMemStore()
	guard := New(api.NewClient(srv.URL), creds)

	if _, err := guard.Login(context.Background(), "dana@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	guard.Logout()
	guard.Logout()

	if guard.State() != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", guard.State())
	}
	if guard.User() != nil {
		t.Error("user survives logout")
	}
}
