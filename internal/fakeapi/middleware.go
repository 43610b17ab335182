package fakeapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
)

func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status
			dur := time.Since(start).Milliseconds()

			switch {
			case status >= 500:
				l.Error("http_request", "status", status, "duration_ms", dur, "error", err)
			case status >= 400:
				l.Warn("http_request", "status", status, "duration_ms", dur, "error", err)
			default:
				l.Info("http_request", "status", status, "duration_ms", dur, "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

// authenticate resolves an "Authorization: Token <jwt>" header to a user. A
// request without the header continues as a guest; a bad token is rejected.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		raw, ok := strings.CutPrefix(header, "Token ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token header.")
		}

		claims, err := s.parseToken(raw)
		if err != nil {
			logging.FromContext(c.Request().Context()).Warn("token_rejected", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
		}

		userID, err := strconv.Atoi(claims.Subject)
		if err != nil || !s.userExists(userID) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxTokenID, claims.ID)
		return next(c)
	}
}

func requireUser(c echo.Context) (int, error) {
	id, ok := c.Get(ctxUserID).(int)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	return id, nil
}
