// Package fakeapi is an in-memory stand-in for the storefront backend. It
// serves the auth, cart and catalog endpoints the client library calls, with
// the same JSON shapes and error bodies, so the library can run end to end
// without the real service.
package fakeapi

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	DefaultTokenTTL = 24 * time.Hour

	// SessionCookie identifies a guest cart between requests.
	SessionCookie = "sessionid"

	ctxUserID  = "user_id"
	ctxTokenID = "token_id"
)

type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type account struct {
	user         models.User
	passwordHash string
}

type Server struct {
	cfg Config

	mu         sync.Mutex
	users      map[int]*account
	usernames  map[string]int
	nextUserID int
	revoked    map[string]struct{}

	carts      map[string]*cart
	nextCartID int
	nextLineID int

	catalog catalog
}

func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Server{
		cfg:       cfg,
		users:     make(map[int]*account),
		usernames: make(map[string]int),
		revoked:   make(map[string]struct{}),
		carts:     make(map[string]*cart),
		catalog:   seedCatalog(),
	}
}

// NewEcho builds an echo instance serving s under /api.
func NewEcho(s *Server, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(RequestLogger(log))

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")
	api.Use(s.authenticate)

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/user", s.currentUser)
	auth.POST("/logout", s.logout)

	cart := api.Group("/cart")
	cart.GET("", s.getCart)
	cart.POST("/items", s.addItem)
	cart.POST("/education-tablets", s.addEducationTablet)
	cart.PATCH("/items/:id", s.updateItem)
	cart.DELETE("/items/:id", s.removeItem)
	cart.POST("/clear", s.clearCart)

	api.GET("/products", s.listProducts)
	api.GET("/products/:slug", s.productBySlug)
	api.GET("/categories", s.listCategories)
	api.GET("/brands", s.listBrands)
	api.GET("/education/tablets", s.listTablets)
}

// errorHandler renders every failure as {"detail": "..."}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := http.StatusInternalServerError, "Internal server error."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, map[string]string{"detail": msg})
}
