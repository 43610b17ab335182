package fakeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username taken")
)

// AddUser creates an account directly, bypassing the HTTP layer.
func (s *Server) AddUser(req models.RegisterRequest) (models.User, error) {
	hash, err := hashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	userType := req.UserType
	if userType == "" {
		userType = "individual"
	}
	salaried := req.IsSalariedEmployee != nil && *req.IsSalariedEmployee

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[req.Username]; taken {
		return models.User{}, ErrUsernameTaken
	}
	s.nextUserID++
	u := models.User{
		ID:        s.nextUserID,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Profile: models.Profile{
			UserType:           userType,
			Phone:              req.Phone,
			CompanyName:        req.CompanyName,
			SchoolName:         req.SchoolName,
			AlumniSchool:       req.AlumniSchool,
			IsSalariedEmployee: salaried,
		},
	}
	s.users[u.ID] = &account{user: u, passwordHash: hash}
	s.usernames[u.Username] = u.ID
	return u, nil
}

func (s *Server) checkCredentials(username, password string) (models.User, error) {
	s.mu.Lock()
	id, ok := s.usernames[username]
	var acct account
	if ok {
		acct = *s.users[id]
	}
	s.mu.Unlock()

	if !ok || !checkPassword(acct.passwordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return acct.user, nil
}

func (s *Server) userExists(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok
}

func (s *Server) register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.register")

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username, email and password are required.")
	}
	if req.Password != req.Password2 {
		return echo.NewHTTPError(http.StatusBadRequest, "Password fields didn't match.")
	}

	user, err := s.AddUser(req)
	if errors.Is(err, ErrUsernameTaken) {
		return echo.NewHTTPError(http.StatusBadRequest, "A user with that username already exists.")
	}
	if err != nil {
		return err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return err
	}

	l.Info("user_registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, models.AuthResponse{User: user, Token: token})
}

// login also moves the caller's guest cart into the user's cart.
func (s *Server) login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.login")

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}

	user, err := s.checkCredentials(req.Username, req.Password)
	if err != nil {
		l.Warn("login_failed", "username", req.Username)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return err
	}

	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		if merged := s.mergeGuestCart(ck.Value, user.ID); merged > 0 {
			l.Info("guest_cart_merged", "user_id", user.ID, "lines", merged)
		}
	}

	return c.JSON(http.StatusOK, models.AuthResponse{User: user, Token: token})
}

func (s *Server) currentUser(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	user := s.users[id].user
	s.mu.Unlock()

	return c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	if id, ok := c.Get(ctxTokenID).(string); ok {
		s.revokeToken(id)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Successfully logged out."})
}
