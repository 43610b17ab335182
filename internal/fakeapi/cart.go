package fakeapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type cart struct {
	id     int
	cartID string
	lines  []*cartLine
}

type cartLine struct {
	id       int
	product  *models.Product
	variant  *models.ProductVariant
	tablet   *models.EducationTablet
	quantity int
}

func (l *cartLine) sameAs(o *cartLine) bool {
	if l.tablet != nil || o.tablet != nil {
		return l.tablet != nil && o.tablet != nil && l.tablet.ID == o.tablet.ID
	}
	if l.product.ID != o.product.ID {
		return false
	}
	if l.variant == nil || o.variant == nil {
		return l.variant == nil && o.variant == nil
	}
	return l.variant.ID == o.variant.ID
}

func (l *cartLine) stock() int {
	switch {
	case l.tablet != nil:
		return l.tablet.Stock
	case l.variant != nil:
		return l.variant.Stock
	default:
		return l.product.Stock
	}
}

func (l *cartLine) unitPrice() models.Price {
	switch {
	case l.tablet != nil:
		return l.tablet.Price
	case l.variant != nil:
		return l.variant.Price
	default:
		return l.product.CurrentPrice
	}
}

func (ct *cart) find(id int) (int, *cartLine) {
	for i, l := range ct.lines {
		if l.id == id {
			return i, l
		}
	}
	return -1, nil
}

func (ct *cart) remove(i int) {
	ct.lines = append(ct.lines[:i], ct.lines[i+1:]...)
}

func userCartKey(id int) string {
	return "user:" + strconv.Itoa(id)
}

func guestCartKey(sessionID string) string {
	return "guest:" + sessionID
}

// ownerKey names the cart of the caller: the user's when authenticated,
// otherwise the guest session's, starting a session if needed.
func (s *Server) ownerKey(c echo.Context) string {
	if id, ok := c.Get(ctxUserID).(int); ok {
		return userCartKey(id)
	}
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return guestCartKey(ck.Value)
	}

	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return guestCartKey(sid)
}

// cartFor returns the cart stored under key, creating it on first use.
// Callers hold s.mu.
func (s *Server) cartFor(key string) *cart {
	if ct, ok := s.carts[key]; ok {
		return ct
	}
	s.nextCartID++
	ct := &cart{id: s.nextCartID, cartID: uuid.NewString()}
	s.carts[key] = ct
	return ct
}

// mergeGuestCart moves a guest cart into the user's cart, adding quantities
// of matching lines. It returns the number of guest lines moved.
func (s *Server) mergeGuestCart(sessionID string, userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := guestCartKey(sessionID)
	guest, ok := s.carts[key]
	if !ok {
		return 0
	}
	delete(s.carts, key)

	dst := s.cartFor(userCartKey(userID))
	for _, gl := range guest.lines {
		merged := false
		for _, ul := range dst.lines {
			if ul.sameAs(gl) {
				ul.quantity += gl.quantity
				merged = true
				break
			}
		}
		if !merged {
			dst.lines = append(dst.lines, gl)
		}
	}
	return len(guest.lines)
}

func render(ct *cart) models.Cart {
	out := models.Cart{
		ID:     ct.id,
		CartID: ct.cartID,
		Items:  make([]models.CartItem, 0, len(ct.lines)),
	}

	total := decimal.Zero
	for _, l := range ct.lines {
		unit, _ := l.unitPrice().Decimal()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.quantity)))
		total = total.Add(lineTotal)
		out.ItemCount += l.quantity

		item := models.CartItem{
			ID:         l.id,
			Quantity:   l.quantity,
			UnitPrice:  models.PriceFromDecimal(unit),
			TotalPrice: models.PriceFromDecimal(lineTotal),
		}
		if l.tablet != nil {
			tablet := *l.tablet
			item.EducationTablet = &tablet
			item.ItemName = tablet.Name
			item.ItemType = models.ItemTypeEducationTablet
		} else {
			product := *l.product
			item.Product = &product
			item.ProductID = &product.ID
			item.ItemName = product.Name
			item.ItemType = models.ItemTypeProduct
			if l.variant != nil {
				variant := *l.variant
				item.Variant = &variant
				item.ItemName += " - " + variant.Name
			}
		}
		out.Items = append(out.Items, item)
	}
	out.Total = models.PriceFromDecimal(total)
	return out
}

func (s *Server) getCart(c echo.Context) error {
	key := s.ownerKey(c)

	s.mu.Lock()
	out := render(s.cartFor(key))
	s.mu.Unlock()

	return c.JSON(http.StatusOK, out)
}

// addLine adds l to the caller's cart, merging with an identical line.
func (s *Server) addLine(c echo.Context, l *cartLine) error {
	key := s.ownerKey(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	ct := s.cartFor(key)
	for _, existing := range ct.lines {
		if existing.sameAs(l) {
			if existing.quantity+l.quantity > existing.stock() {
				return echo.NewHTTPError(http.StatusBadRequest, "Insufficient stock.")
			}
			existing.quantity += l.quantity
			return c.JSON(http.StatusOK, render(ct))
		}
	}

	if l.quantity > l.stock() {
		return echo.NewHTTPError(http.StatusBadRequest, "Insufficient stock.")
	}
	s.nextLineID++
	l.id = s.nextLineID
	ct.lines = append(ct.lines, l)
	return c.JSON(http.StatusOK, render(ct))
}

func (s *Server) addItem(c echo.Context) error {
	var req models.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1.")
	}

	product, ok := s.catalog.productByID(req.ProductID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
	}
	l := &cartLine{product: product, quantity: req.Quantity}
	if req.VariantID != nil {
		v, ok := product.Variant(*req.VariantID)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Variant not found.")
		}
		l.variant = &v
	}
	return s.addLine(c, l)
}

func (s *Server) addEducationTablet(c echo.Context) error {
	var req models.AddEducationTabletRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1.")
	}

	tablet, ok := s.catalog.tabletByID(req.TabletID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Education tablet not found.")
	}
	return s.addLine(c, &cartLine{tablet: tablet, quantity: req.Quantity})
}

func itemID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid item id.")
	}
	return id, nil
}

// updateItem sets a line's quantity; zero or less removes the line.
func (s *Server) updateItem(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req models.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}

	key := s.ownerKey(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	ct := s.cartFor(key)
	i, l := ct.find(id)
	if l == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}
	switch {
	case req.Quantity <= 0:
		ct.remove(i)
	case req.Quantity > l.stock():
		return echo.NewHTTPError(http.StatusBadRequest, "Insufficient stock.")
	default:
		l.quantity = req.Quantity
	}
	return c.JSON(http.StatusOK, render(ct))
}

func (s *Server) removeItem(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	key := s.ownerKey(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	ct := s.cartFor(key)
	i, l := ct.find(id)
	if l == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}
	ct.remove(i)
	return c.JSON(http.StatusOK, render(ct))
}

func (s *Server) clearCart(c echo.Context) error {
	key := s.ownerKey(c)

	s.mu.Lock()
	s.cartFor(key).lines = nil
	s.mu.Unlock()

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Cart cleared."})
}
