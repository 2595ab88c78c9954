// Package authapi is the HTTP adapter for the remote VendorSync
// authentication service. It owns the wire schemas and the mapping from
// HTTP status codes to the domain error taxonomy; nothing above this
// package sees a status code.
package authapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ ports.AuthGateway = (*Client)(nil)

// New builds a client for the service at baseURL. A default request timeout
// is applied when none is provided.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// errorResponse tolerates both envelope spellings seen across backend
// deployments: {"error": "..."} and {"message": "..."}.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Login exchanges credentials for an identity.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	var ok authResponse
	var fail errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&ok).
		SetError(&fail).
		Post("/login")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, c.classify(resp.StatusCode(), fail)
	}
	return toIdentity(ok)
}

// Register creates an account and returns the identity the service hands
// back, so the caller can log it straight in.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	var ok authResponse
	var fail errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(registerRequest{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Password:  input.Password,
			Role:      string(input.Role),
		}).
		SetResult(&ok).
		SetError(&fail).
		Post("/register")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, c.classify(resp.StatusCode(), fail)
	}
	return toIdentity(ok)
}

// classify maps a non-2xx response to a domain error, keeping the server's
// message where the user can act on it.
func (c *Client) classify(status int, body errorResponse) error {
	msg := body.text()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrInvalidCredentials
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
		}
		return domain.ErrValidation
	case status >= 500:
		c.log.Error().Int("status", status).Str("message", msg).Msg("authentication service failure")
		return domain.ErrServer
	}
	c.log.Error().Int("status", status).Str("message", msg).Msg("unexpected authentication response")
	return domain.ErrServer
}

func toIdentity(resp authResponse) (*domain.Identity, error) {
	identity := &domain.Identity{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
		Role:      domain.Role(resp.User.Role),
	}
	if !identity.Complete() {
		return nil, fmt.Errorf("%w: incomplete auth payload", domain.ErrServer)
	}
	return identity, nil
}
