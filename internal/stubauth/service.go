package stubauth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// registrableRoles is the closed role set the stub hands out. One production
// deployment also accepted "admin" at registration; the stub deliberately
// does not, matching the console's closed set.
var registrableRoles = map[string]struct{}{
	"manager": {},
	"staff":   {},
	"vendor":  {},
}

// Service implements registration and login.
type Service struct {
	repo      UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo UserRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// RegisterInput is the profile accepted at registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// Register creates an account and returns it with a fresh token, so the
// client can log the new account straight in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	if input.Email == "" || input.Password == "" {
		return "", nil, ErrInvalidInput
	}
	if _, ok := registrableRoles[input.Role]; !ok {
		return "", nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login verifies credentials and returns a signed token plus the account.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
