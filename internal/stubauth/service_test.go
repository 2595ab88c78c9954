package stubauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *User) (*User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, ErrEmailTaken
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, ErrUserNotFound
}

func registered(t *testing.T, svc *Service, email, password, role string) *User {
	t.Helper()
	_, user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
		Role:      role,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestService_Register_Success(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)

	token, user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Maya",
		LastName:  "Okoro",
		Email:     "manager@test.com",
		Password:  "password123",
		Role:      "manager",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token for auto-login")
	}
	if user.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)

	for _, role := range []string{"", "admin", "superuser"} {
		_, _, err := svc.Register(context.Background(), RegisterInput{
			Email: "a@b.com", Password: "pw123456", Role: role,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("role %q: expected ErrInvalidInput, got %v", role, err)
		}
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)

	registered(t, svc, "bob@test.com", "pw123456", "staff")
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "bob@test.com", Password: "other", Role: "staff",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Login_Success(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)
	registered(t, svc, "manager@test.com", "password123", "manager")

	token, user, err := svc.Login(context.Background(), "manager@test.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != "manager" {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "manager" || claims["email"] != "manager@test.com" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)
	registered(t, svc, "dave@test.com", "goodpass", "vendor")

	if _, _, err := svc.Login(context.Background(), "dave@test.com", "badpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc := NewService(newMemUserRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@test.com", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
