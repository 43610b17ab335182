package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Education struct {
	c *apiclient.Client
}

func (e *Education) Boards(ctx context.Context) (*models.Page[models.EducationBoard], error) {
	return apiclient.Fetch[models.Page[models.EducationBoard]](ctx, e.c, "/education/boards", apiclient.Options{})
}

func (e *Education) Packages(ctx context.Context) (*models.Page[models.ClassroomPackage], error) {
	return apiclient.Fetch[models.Page[models.ClassroomPackage]](ctx, e.c, "/education/packages", apiclient.Options{})
}

func (e *Education) DonationAmounts(ctx context.Context) ([]models.DonationAmount, error) {
	return list[models.DonationAmount](ctx, e.c, "/education/donation-amounts", nil)
}

func (e *Education) Fundraisers(ctx context.Context) (*models.Page[models.Fundraiser], error) {
	return apiclient.Fetch[models.Page[models.Fundraiser]](ctx, e.c, "/education/fundraisers", apiclient.Options{})
}

func (e *Education) Fundraiser(ctx context.Context, shareLink string) (*models.Fundraiser, error) {
	return apiclient.Fetch[models.Fundraiser](ctx, e.c, "/education/fundraisers/"+url.PathEscape(shareLink), apiclient.Options{})
}

// CreateFundraiser requires an authenticated token.
func (e *Education) CreateFundraiser(ctx context.Context, req models.FundraiserRequest, token string) (*models.Fundraiser, error) {
	return apiclient.Fetch[models.Fundraiser](ctx, e.c, "/education/fundraisers", apiclient.Options{
		Method: http.MethodPost,
		Body:   req,
		Token:  token,
	})
}

func (e *Education) Donate(ctx context.Context, shareLink string, req models.DonationRequest) (*models.Donation, error) {
	endpoint := "/education/fundraisers/" + url.PathEscape(shareLink) + "/donate"
	return apiclient.Fetch[models.Donation](ctx, e.c, endpoint, apiclient.Options{Method: http.MethodPost, Body: req})
}

func (e *Education) Tablets(ctx context.Context, params url.Values) (*models.Page[models.EducationTablet], error) {
	return apiclient.Fetch[models.Page[models.EducationTablet]](ctx, e.c, "/education/tablets", apiclient.Options{Query: params})
}

// Software returns the tablet software catalog, unwrapped from its page envelope.
func (e *Education) Software(ctx context.Context) ([]models.TabletSoftware, error) {
	page, err := apiclient.Fetch[models.Page[models.TabletSoftware]](ctx, e.c, "/education/tablet-software", apiclient.Options{})
	if err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []models.TabletSoftware{}, nil
	}
	return page.Results, nil
}

func (e *Education) Schools(ctx context.Context, search string) ([]models.School, error) {
	var query url.Values
	if s := strings.TrimSpace(search); s != "" {
		query = url.Values{"search": []string{s}}
	}
	return list[models.School](ctx, e.c, "/schools", query)
}
