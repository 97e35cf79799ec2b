package actor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xerrors "ead-service/internal/pkg/errors"
)

func TestGetCallerUserProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/caller/profile" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("token not forwarded: %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Maria Silva"}`))
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL, time.Second)
	p, err := a.GetCallerUserProfile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if p == nil || p.Name != "Maria Silva" {
		t.Fatalf("got %+v", p)
	}
}

func TestGetCallerUserProfileAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL, time.Second)
	p, err := a.GetCallerUserProfile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if p != nil {
		t.Fatalf("got %+v, want nil", p)
	}
}

func TestPrivilegeFailuresMapToForbidden(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		a := NewHTTPActor(srv.URL, time.Second)
		_, err := a.IsCallerAdmin(context.Background(), "tok-1")
		srv.Close()
		if !errors.Is(err, xerrors.ErrForbidden) {
			t.Fatalf("status %d: got %v, want ErrForbidden", status, err)
		}
	}
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	a := NewHTTPActor(srv.URL, time.Second)
	_, err := a.IsCallerApproved(context.Background(), "tok-1")
	if !errors.Is(err, xerrors.ErrActorUnavailable) {
		t.Fatalf("got %v, want ErrActorUnavailable", err)
	}
}

func TestBooleanQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/caller/admin":
			w.Write([]byte(`{"admin":true}`))
		case "/caller/approved":
			w.Write([]byte(`{"approved":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL, time.Second)
	admin, err := a.IsCallerAdmin(context.Background(), "tok-1")
	if err != nil || !admin {
		t.Fatalf("admin: got (%v, %v)", admin, err)
	}
	approved, err := a.IsCallerApproved(context.Background(), "tok-1")
	if err != nil || approved {
		t.Fatalf("approved: got (%v, %v)", approved, err)
	}
}
