package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Financing struct {
	c *apiclient.Client
}

func (f *Financing) Plans(ctx context.Context) ([]models.FinancingPlan, error) {
	return list[models.FinancingPlan](ctx, f.c, "/financing/plans", nil)
}

func (f *Financing) CreateApplication(ctx context.Context, req models.FinancingApplicationRequest, token string) (*models.FinancingApplication, error) {
	return apiclient.Fetch[models.FinancingApplication](ctx, f.c, "/financing/applications", apiclient.Options{
		Method: http.MethodPost,
		Body:   req,
		Token:  token,
	})
}

func (f *Financing) SubmitToBank(ctx context.Context, applicationID string) (*models.FinancingApplication, error) {
	return f.action(ctx, applicationID, "submit_to_bank")
}

func (f *Financing) Confirm(ctx context.Context, applicationID string) (*models.FinancingApplication, error) {
	return f.action(ctx, applicationID, "confirm")
}

func (f *Financing) action(ctx context.Context, applicationID, action string) (*models.FinancingApplication, error) {
	endpoint := "/financing/applications/" + url.PathEscape(applicationID) + "/" + action
	return apiclient.Fetch[models.FinancingApplication](ctx, f.c, endpoint, apiclient.Options{Method: http.MethodPost})
}

type Employers struct {
	c *apiclient.Client
}

func (e *Employers) List(ctx context.Context) ([]models.Employer, error) {
	return list[models.Employer](ctx, e.c, "/employers", nil)
}
