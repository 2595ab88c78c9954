package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

// renderPage wraps view content in the console chrome. Rendering stays this
// bare on purpose: the console is an operator surface, and the page layer is
// a collaborator of the access-control core, not the product.
func renderPage(c echo.Context, status int, title, body string, identity *domain.Identity) error {
	nav := `<a href="/login">Sign in</a> <a href="/register">Create account</a>`
	if identity != nil {
		nav = fmt.Sprintf(
			`<span>%s (%s)</span><form method="post" action="/logout"><button type="submit">Sign out</button></form>`,
			html.EscapeString(identity.FirstName), html.EscapeString(string(identity.Role)),
		)
	}
	return c.HTML(status, fmt.Sprintf(
		`<!doctype html><html><head><title>%s — VendorSync</title></head><body><nav>%s</nav><main><h1>%s</h1>%s</main></body></html>`,
		html.EscapeString(title), nav, html.EscapeString(title), body,
	))
}

func formError(msg string) string {
	if msg == "" {
		return ""
	}
	return fmt.Sprintf(`<p class="error">%s</p>`, html.EscapeString(msg))
}

func redirectTo(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}
