package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Orders struct {
	c *apiclient.Client
}

// Create places an order from the current cart; token may be empty for guest checkout.
func (o *Orders) Create(ctx context.Context, req models.OrderRequest, token string) (*models.Order, error) {
	return apiclient.Fetch[models.Order](ctx, o.c, "/orders", apiclient.Options{
		Method: http.MethodPost,
		Body:   req,
		Token:  token,
	})
}

func (o *Orders) List(ctx context.Context, token string) (*models.Page[models.Order], error) {
	return apiclient.Fetch[models.Page[models.Order]](ctx, o.c, "/orders", apiclient.Options{Token: token})
}

func (o *Orders) Get(ctx context.Context, orderID, token string) (*models.Order, error) {
	return apiclient.Fetch[models.Order](ctx, o.c, "/orders/"+url.PathEscape(orderID), apiclient.Options{Token: token})
}
