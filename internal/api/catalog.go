package api

import (
	"context"
	"net/url"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Products struct {
	c *apiclient.Client
}

// List passes params through as query filters (type, category, brand, search, page).
func (p *Products) List(ctx context.Context, params url.Values) (*models.Page[models.Product], error) {
	return apiclient.Fetch[models.Page[models.Product]](ctx, p.c, "/products", apiclient.Options{Query: params})
}

func (p *Products) ByType(ctx context.Context, productType string) (*models.Page[models.Product], error) {
	return p.List(ctx, url.Values{"type": []string{productType}})
}

func (p *Products) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	return apiclient.Fetch[models.Product](ctx, p.c, "/products/"+url.PathEscape(slug), apiclient.Options{})
}

type Categories struct {
	c *apiclient.Client
}

func (cs *Categories) List(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, cs.c, "/categories", nil)
}

func (cs *Categories) ByType(ctx context.Context, categoryType string) ([]models.Category, error) {
	return list[models.Category](ctx, cs.c, "/categories", url.Values{"type": []string{categoryType}})
}

type Brands struct {
	c *apiclient.Client
}

func (b *Brands) List(ctx context.Context) ([]models.Brand, error) {
	return list[models.Brand](ctx, b.c, "/brands", nil)
}

func list[T any](ctx context.Context, c *apiclient.Client, endpoint string, query url.Values) ([]T, error) {
	var out []T
	if err := c.Do(ctx, endpoint, apiclient.Options{Query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
