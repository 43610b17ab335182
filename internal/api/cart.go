package api

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

// Cart calls accept an empty token for guest carts; the backend then keys the
// cart by the session cookie.
type Cart struct {
	c *apiclient.Client
}

func (ct *Cart) Get(ctx context.Context, token string) (*models.Cart, error) {
	return apiclient.Fetch[models.Cart](ctx, ct.c, "/cart", apiclient.Options{Token: token})
}

func (ct *Cart) AddItem(ctx context.Context, productID int, variantID *int, quantity int, token string) (*models.Cart, error) {
	return apiclient.Fetch[models.Cart](ctx, ct.c, "/cart/items", apiclient.Options{
		Method: http.MethodPost,
		Body:   models.AddCartItemRequest{ProductID: productID, VariantID: variantID, Quantity: quantity},
		Token:  token,
	})
}

func (ct *Cart) AddEducationTablet(ctx context.Context, tabletID, quantity int, token string) (*models.Cart, error) {
	return apiclient.Fetch[models.Cart](ctx, ct.c, "/cart/education-tablets", apiclient.Options{
		Method: http.MethodPost,
		Body:   models.AddEducationTabletRequest{TabletID: tabletID, Quantity: quantity},
		Token:  token,
	})
}

func (ct *Cart) UpdateItem(ctx context.Context, itemID, quantity int, token string) (*models.Cart, error) {
	return apiclient.Fetch[models.Cart](ctx, ct.c, "/cart/items/"+itoa(itemID), apiclient.Options{
		Method: http.MethodPatch,
		Body:   models.UpdateCartItemRequest{Quantity: quantity},
		Token:  token,
	})
}

func (ct *Cart) RemoveItem(ctx context.Context, itemID int, token string) (*models.Cart, error) {
	return apiclient.Fetch[models.Cart](ctx, ct.c, "/cart/items/"+itoa(itemID), apiclient.Options{
		Method: http.MethodDelete,
		Token:  token,
	})
}

func (ct *Cart) Clear(ctx context.Context, token string) error {
	return ct.c.Do(ctx, "/cart/clear", apiclient.Options{Method: http.MethodPost, Token: token}, nil)
}
