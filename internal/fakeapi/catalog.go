package fakeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type catalog struct {
	brands     []models.Brand
	categories []models.Category
	products   []models.Product
	tablets    []models.EducationTablet
}

func (ct *catalog) productByID(id int) (*models.Product, bool) {
	for i := range ct.products {
		if ct.products[i].ID == id {
			return &ct.products[i], true
		}
	}
	return nil, false
}

func (ct *catalog) tabletByID(id int) (*models.EducationTablet, bool) {
	for i := range ct.tablets {
		if ct.tablets[i].ID == id {
			return &ct.tablets[i], true
		}
	}
	return nil, false
}

func (s *Server) listProducts(c echo.Context) error {
	var (
		productType = c.QueryParam("type")
		category    = c.QueryParam("category")
		brand       = c.QueryParam("brand")
		search      = strings.ToLower(strings.TrimSpace(c.QueryParam("search")))
	)

	matched := make([]models.Product, 0, len(s.catalog.products))
	for _, p := range s.catalog.products {
		if productType != "" && p.ProductType != productType {
			continue
		}
		if category != "" && (p.Category == nil || p.Category.Slug != category) {
			continue
		}
		if brand != "" && (p.Brand == nil || p.Brand.Slug != brand) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		matched = append(matched, p)
	}
	return c.JSON(http.StatusOK, paginate(c, matched))
}

func (s *Server) productBySlug(c echo.Context) error {
	slug := c.Param("slug")
	for _, p := range s.catalog.products {
		if p.Slug == slug {
			return c.JSON(http.StatusOK, p)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Not found.")
}

func (s *Server) listCategories(c echo.Context) error {
	categoryType := c.QueryParam("type")
	out := make([]models.Category, 0, len(s.catalog.categories))
	for _, cat := range s.catalog.categories {
		if categoryType == "" || cat.CategoryType == categoryType {
			out = append(out, cat)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listBrands(c echo.Context) error {
	return c.JSON(http.StatusOK, s.catalog.brands)
}

func (s *Server) listTablets(c echo.Context) error {
	out := make([]models.EducationTablet, 0, len(s.catalog.tablets))
	for _, t := range s.catalog.tablets {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return c.JSON(http.StatusOK, paginate(c, out))
}

func parseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// calculate turns a 1-based page and a page size into an offset and limit.
func calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}

// paginate slices items by the page and page_size query parameters into the
// backend's page envelope, with absolute next/previous links.
func paginate[T any](c echo.Context, items []T) models.Page[T] {
	page := parseIntDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	from, limit := calculate(page, parseIntDefault(c.QueryParam("page_size"), defaultPageSize))

	out := models.Page[T]{Count: len(items), Results: []T{}}
	if from < len(items) {
		out.Results = items[from:min(from+limit, len(items))]
	}
	if from+limit < len(items) {
		next := pageURL(c, page+1)
		out.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		out.Previous = &prev
	}
	return out
}

func pageURL(c echo.Context, page int) string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return c.Scheme() + "://" + c.Request().Host + u.RequestURI()
}
