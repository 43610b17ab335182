// Package api groups the backend endpoints by resource. Each resource is a
// thin value over apiclient.Client with fixed paths and typed payloads.
package api

import (
	"strconv"

	"github.com/Skotchmaster/storefront/internal/apiclient"
)

type API struct {
	Auth       *Auth
	Cart       *Cart
	Products   *Products
	Categories *Categories
	Brands     *Brands
	Orders     *Orders
	Financing  *Financing
	Employers  *Employers
	Enterprise *Enterprise
	Education  *Education
}

func New(c *apiclient.Client) *API {
	return &API{
		Auth:       &Auth{c: c},
		Cart:       &Cart{c: c},
		Products:   &Products{c: c},
		Categories: &Categories{c: c},
		Brands:     &Brands{c: c},
		Orders:     &Orders{c: c},
		Financing:  &Financing{c: c},
		Employers:  &Employers{c: c},
		Enterprise: &Enterprise{c: c},
		Education:  &Education{c: c},
	}
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
