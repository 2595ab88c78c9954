package stubauth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(NewService(newMemUserRepo(), "secret", time.Hour))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RegisterThenLogin(t *testing.T) {
	h := testRouter(t)

	rec := postJSON(t, h, "/register", `{"first_name":"Mia","last_name":"Navarro","email":"manager@test.com","password":"password123","role":"manager"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid register response: %v", err)
	}
	if created.Token == "" || created.User.Role != "manager" || created.User.ID == "" {
		t.Fatalf("unexpected register payload: %+v", created)
	}

	rec = postJSON(t, h, "/login", `{"email":"manager@test.com","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var logged authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &logged); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	if logged.Token == "" || logged.User.Email != "manager@test.com" {
		t.Fatalf("unexpected login payload: %+v", logged)
	}
}

func TestHandler_Login_BadPassword(t *testing.T) {
	h := testRouter(t)

	postJSON(t, h, "/register", `{"email":"v@test.com","password":"password123","role":"vendor"}`)

	rec := postJSON(t, h, "/login", `{"email":"v@test.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandler_Login_UnknownEmailAlso401(t *testing.T) {
	h := testRouter(t)

	rec := postJSON(t, h, "/login", `{"email":"ghost@test.com","password":"pw"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown account must not be distinguishable, expected 401, got %d", rec.Code)
	}
}

func TestHandler_Register_Conflict(t *testing.T) {
	h := testRouter(t)

	body := `{"email":"dup@test.com","password":"password123","role":"staff"}`
	postJSON(t, h, "/register", body)

	rec := postJSON(t, h, "/register", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandler_Register_AdminRejected(t *testing.T) {
	h := testRouter(t)

	rec := postJSON(t, h, "/register", `{"email":"root@test.com","password":"password123","role":"admin"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for admin role, got %d", rec.Code)
	}
}
