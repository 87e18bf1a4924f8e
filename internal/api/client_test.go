package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndtran/shoutbox/internal/model"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok-123")

	if err := c.Get(context.Background(), "/auth/me", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Get(context.Background(), "/shoutouts", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
}

func TestUnauthorizedFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	fired := 0
	c.OnUnauthorized(func() { fired++ })

	err := c.Get(context.Background(), "/auth/me", nil)
	if !IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "Could not validate credentials" {
		t.Errorf("AuthError message = %q", authErr.Message)
	}
	if fired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", fired)
	}
}

func TestRetryOnRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	var out map[string]bool
	if err := c.Get(context.Background(), "/notifications", &out); err != nil {
		t.Fatalf("Get after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("server saw %d attempts, want 3", attempts)
	}
	if !out["ok"] {
		t.Error("response body not unmarshaled after retry")
	}
}

func TestUserProfileLookup(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"User not found"}`))
			return
		}
		w.Write([]byte(`{"id":7,"name":"Priya","department":"Design","role":"employee"}`))
	})
	var gotSender string
	mux.HandleFunc("GET /shoutouts", func(w http.ResponseWriter, r *http.Request) {
		gotSender = r.URL.Query().Get("sender_id")
		w.Write([]byte(`[{"id":3,"sender_id":7,"message":"hi"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.GetUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Name != "Priya" || user.Department != "Design" {
		t.Errorf("user = %+v", user)
	}

	sent, err := c.ListShoutouts(context.Background(), model.ShoutOutFilter{SenderID: 7})
	if err != nil {
		t.Fatalf("ListShoutouts: %v", err)
	}
	if gotSender != "7" {
		t.Errorf("sender_id query = %q, want 7", gotSender)
	}
	if len(sent) != 1 || sent[0].SenderID != 7 {
		t.Errorf("sent = %+v", sent)
	}
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not authorized to perform this action"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Delete(context.Background(), "/shoutouts/1")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if statusErr.Detail != "Not authorized to perform this action" {
		t.Errorf("Detail = %q", statusErr.Detail)
	}
}
