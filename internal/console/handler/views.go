package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendorsync/procurement-console/internal/console/middleware"
)

// ViewHandler serves the console's pages. Each protected page sits behind the
// guard middleware, which has already decided access and injected the
// identity by the time these run; the handlers only display.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

func (h *ViewHandler) Landing(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	body := `<p>Procurement for managers, staff, and vendors.</p>`
	if identity == nil {
		body += `<p><a href="/login">Sign in</a> or <a href="/register">create an account</a> to continue.</p>`
	} else {
		body += `<p><a href="/dashboard">Go to your dashboard</a>.</p>`
	}
	return renderPage(c, http.StatusOK, "VendorSync", body, identity)
}

func (h *ViewHandler) Dashboard(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	body := fmt.Sprintf(
		`<p>Welcome back, %s.</p><p>Signed in as <strong>%s</strong> (%s).</p>`,
		html.EscapeString(identity.FirstName),
		html.EscapeString(identity.Email),
		html.EscapeString(string(identity.Role)),
	)
	return renderPage(c, http.StatusOK, "Dashboard", body, identity)
}

func (h *ViewHandler) Search(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	body := `<form method="get" action="/search"><input name="q" value="` +
		html.EscapeString(c.QueryParam("q")) + `"><button type="submit">Search</button></form>`
	return renderPage(c, http.StatusOK, "Search", body, identity)
}

func (h *ViewHandler) Orders(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	return renderPage(c, http.StatusOK, "Orders", `<p>Order list.</p>`, identity)
}

func (h *ViewHandler) NewOrder(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	return renderPage(c, http.StatusOK, "New order", `<p>Order creation form.</p>`, identity)
}

func (h *ViewHandler) Quotes(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	return renderPage(c, http.StatusOK, "Quotes", `<p>Quote submission.</p>`, identity)
}

func (h *ViewHandler) Requirements(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	return renderPage(c, http.StatusOK, "Requirements", `<p>Open requirements.</p>`, identity)
}

func (h *ViewHandler) Unauthorized(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	body := `<p>Your role does not grant access to that page.</p><p><a href="/dashboard">Back to your dashboard</a>.</p>`
	return renderPage(c, http.StatusForbidden, "Not authorized", body, identity)
}
