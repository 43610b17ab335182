package api

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Auth struct {
	c *apiclient.Client
}

func (a *Auth) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	return apiclient.Fetch[models.AuthResponse](ctx, a.c, "/auth/login", apiclient.Options{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Username: username, Password: password},
	})
}

func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return apiclient.Fetch[models.AuthResponse](ctx, a.c, "/auth/register", apiclient.Options{
		Method: http.MethodPost,
		Body:   req,
	})
}

func (a *Auth) User(ctx context.Context, token string) (*models.User, error) {
	return apiclient.Fetch[models.User](ctx, a.c, "/auth/user", apiclient.Options{Token: token})
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.c.Do(ctx, "/auth/logout", apiclient.Options{Method: http.MethodPost, Token: token}, nil)
}
