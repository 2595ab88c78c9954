package console

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/vendorsync/procurement-console/internal/console/handler"
	"github.com/vendorsync/procurement-console/internal/console/middleware"
	"github.com/vendorsync/procurement-console/internal/core/access"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

// NewRouter builds the Echo instance with every view registered behind its
// required capability. The route table is the console's single declaration
// of which capability each view demands; the guard decides per navigation.
func NewRouter(sessions ports.SessionManager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("vendorsync"))

	guard := func(required access.Capability) echo.MiddlewareFunc {
		return middleware.Guard(sessions, required)
	}

	authHandler := handler.NewAuthHandler(sessions)
	views := handler.NewViewHandler()
	health := handler.NewHealthHandler()

	// --- Public views ---
	e.GET("/", views.Landing, guard(access.CapNone))
	e.GET("/login", authHandler.LoginForm, guard(access.CapNone))
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm, guard(access.CapNone))
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/unauthorized", views.Unauthorized, guard(access.CapNone))

	// --- Protected views ---
	e.GET("/dashboard", views.Dashboard, guard(access.CapViewDashboard))
	e.GET("/search", views.Search, guard(access.CapSearch))
	e.GET("/orders", views.Orders, guard(access.CapViewOrders))
	e.GET("/orders/new", views.NewOrder, guard(access.CapCreateOrder))
	e.GET("/quotes", views.Quotes, guard(access.CapSubmitQuote))
	e.GET("/requirements", views.Requirements, guard(access.CapViewRequirements))

	// --- Operational endpoints ---
	e.GET("/healthz", health.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
