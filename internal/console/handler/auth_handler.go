package handler

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendorsync/procurement-console/internal/console/metrics"
	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

// AuthHandler serves the sign-in and registration forms and drives the
// session manager. Authentication failures come back as classified values
// and are rendered inline; nothing here retries on its own.
type AuthHandler struct {
	sessions ports.SessionManager
}

func NewAuthHandler(sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FirstName       string `form:"first_name" validate:"required"`
	LastName        string `form:"last_name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `form:"role" validate:"required,oneof=manager staff vendor"`
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	if h.sessions.IsAuthenticated() {
		return redirectTo(c, "/dashboard")
	}
	return h.renderLogin(c, http.StatusOK, "")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("validation").Inc()
		return h.renderLogin(c, http.StatusUnprocessableEntity, err.Error())
	}

	_, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		status, msg := presentAuthError(err)
		metrics.LoginAttemptsTotal.WithLabelValues(errorLabel(err)).Inc()
		return h.renderLogin(c, status, msg)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return redirectTo(c, "/dashboard")
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if h.sessions.IsAuthenticated() {
		return redirectTo(c, "/dashboard")
	}
	return h.renderRegister(c, http.StatusOK, "")
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation").Inc()
		return h.renderRegister(c, http.StatusUnprocessableEntity, err.Error())
	}

	_, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Role:      domain.Role(form.Role),
	})
	if err != nil {
		status, msg := presentAuthError(err)
		metrics.RegistrationsTotal.WithLabelValues(errorLabel(err)).Inc()
		return h.renderRegister(c, status, msg)
	}

	// Registration auto-logs the new account in; straight to the dashboard.
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return redirectTo(c, "/dashboard")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return redirectTo(c, "/")
}

// presentAuthError maps a classified authentication error to a response
// status and the message shown inline. Server faults stay generic: the real
// cause is already logged where it happened.
func presentAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable, "could not reach the server, please try again"
	case errors.Is(err, domain.ErrAttemptSuperseded):
		return http.StatusConflict, "a newer sign-in attempt replaced this one"
	default:
		return http.StatusBadGateway, "something went wrong, please try again later"
	}
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	case errors.Is(err, domain.ErrAttemptSuperseded):
		return "superseded"
	default:
		return "server"
	}
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, errMsg string) error {
	body := formError(errMsg) + `
<form method="post" action="/login">
  <label>Email <input type="email" name="email"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>`
	return renderPage(c, status, "Sign in", body, nil)
}

func (h *AuthHandler) renderRegister(c echo.Context, status int, errMsg string) error {
	roleOptions := ""
	for _, role := range []domain.Role{domain.RoleManager, domain.RoleStaff, domain.RoleVendor} {
		roleOptions += fmt.Sprintf(`<option value="%s">%s</option>`, role, html.EscapeString(string(role)))
	}
	body := formError(errMsg) + fmt.Sprintf(`
<form method="post" action="/register">
  <label>First name <input name="first_name"></label>
  <label>Last name <input name="last_name"></label>
  <label>Email <input type="email" name="email"></label>
  <label>Password <input type="password" name="password"></label>
  <label>Confirm password <input type="password" name="confirm_password"></label>
  <label>Role <select name="role">%s</select></label>
  <button type="submit">Create account</button>
</form>`, roleOptions)
	return renderPage(c, status, "Create account", body, nil)
}
