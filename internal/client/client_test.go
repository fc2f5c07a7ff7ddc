package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rentease/rentease/internal/core/domain"
)

func TestClient_FetchProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties":[{"_id":"p1","title":"Sunny Flat"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.FetchProperties(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" || got[0].Title != "Sunny Flat" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestClient_FetchProperties_EmptyIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties":null}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).FetchProperties(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestClient_FetchMyProperties_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Fatalf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties":[]}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).FetchMyProperties(context.Background(), "tok-abc"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-abc","userName":"Alice"}`))
	}))
	defer srv.Close()

	token, name, err := New(srv.URL).Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-abc" || name != "Alice" {
		t.Fatalf("got token=%q name=%q", token, name)
	}
}

func TestClient_Login_NameFallsBackToLocalPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-abc","userName":""}`))
	}))
	defer srv.Close()

	_, name, err := New(srv.URL).Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if name != "alice" {
		t.Fatalf("expected local-part fallback, got %q", name)
	}
}

func TestClient_Login_FailureUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	_, _, err := New(srv.URL).Login(context.Background(), "alice@example.com", "wrong")
	if err == nil || err.Error() != "Invalid email or password" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	st := NewState()
	st.SetProperties([]*domain.Property{{ID: "p1"}, {ID: "p2"}})

	snap := st.Snapshot()
	snap[0] = &domain.Property{ID: "mutated"}

	if st.Snapshot()[0].ID != "p1" {
		t.Fatal("mutating a snapshot must not affect the state")
	}
	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}
}

func TestState_SetReplacesWholeSet(t *testing.T) {
	st := NewState()
	st.SetProperties([]*domain.Property{{ID: "p1"}, {ID: "p2"}})
	st.SetProperties([]*domain.Property{{ID: "p3"}})

	snap := st.Snapshot()
	if len(snap) != 1 || snap[0].ID != "p3" {
		t.Fatalf("expected [p3], got %v", snap)
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	st := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			st.SetProperties([]*domain.Property{{ID: "p"}})
		}()
		go func() {
			defer wg.Done()
			_ = st.Snapshot()
			_ = st.Len()
		}()
	}
	wg.Wait()
}
