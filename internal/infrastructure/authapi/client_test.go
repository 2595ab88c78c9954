package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

func newTestClient(url string) *Client {
	return New(url, 2*time.Second, zerolog.Nop())
}

func authOK(token, role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user": map[string]string{
				"id":         "u1",
				"email":      "manager@test.com",
				"first_name": "Mia",
				"last_name":  "Navarro",
				"role":       role,
			},
		})
	}
}

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["email"] != "manager@test.com" || req["password"] != "password123" {
			t.Fatalf("unexpected credentials: %v", req)
		}
		authOK("abc", "manager")(w, r)
	}))
	defer srv.Close()

	identity, err := newTestClient(srv.URL).Login(context.Background(), "manager@test.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if identity.Token != "abc" || identity.Role != domain.RoleManager {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.FirstName != "Mia" || identity.UserID != "u1" {
		t.Fatalf("profile not mapped: %+v", identity)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "x@y.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_Register_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"password too short"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Register(context.Background(), ports.RegisterInput{
		Email: "v@example.com", Password: "x", Role: domain.RoleVendor,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "password too short") {
		t.Fatalf("server message lost: %v", err)
	}
}

func TestClient_Login_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestClient_Login_NetworkError(t *testing.T) {
	srv := httptest.NewServer(authOK("abc", "manager"))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Login(context.Background(), "a@b.com", "pw")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_Login_IncompletePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"role":"manager"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("a 2xx without a token must classify as ErrServer, got %v", err)
	}
}

func TestClient_Register_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["role"] != "vendor" || req["first_name"] != "Vik" {
			t.Fatalf("unexpected register payload: %v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "fresh",
			"user":  map[string]string{"id": "u2", "email": req["email"], "role": "vendor"},
		})
	}))
	defer srv.Close()

	identity, err := newTestClient(srv.URL).Register(context.Background(), ports.RegisterInput{
		FirstName: "Vik",
		Email:     "vendor@example.com",
		Password:  "longenough",
		Role:      domain.RoleVendor,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if identity.Token != "fresh" || identity.Role != domain.RoleVendor {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}
