package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Enterprise struct {
	c *apiclient.Client
}

func (e *Enterprise) Bundles(ctx context.Context) (*models.Page[models.EnterpriseBundle], error) {
	return apiclient.Fetch[models.Page[models.EnterpriseBundle]](ctx, e.c, "/enterprise/bundles", apiclient.Options{})
}

func (e *Enterprise) CreateOrder(ctx context.Context, req models.EnterpriseOrderRequest) (*models.EnterpriseOrder, error) {
	return apiclient.Fetch[models.EnterpriseOrder](ctx, e.c, "/enterprise/orders", apiclient.Options{
		Method: http.MethodPost,
		Body:   req,
	})
}

func (e *Enterprise) CreditCheck(ctx context.Context, orderID string) (*models.EnterpriseOrder, error) {
	endpoint := "/enterprise/orders/" + url.PathEscape(orderID) + "/credit_check"
	return apiclient.Fetch[models.EnterpriseOrder](ctx, e.c, endpoint, apiclient.Options{Method: http.MethodPost})
}
