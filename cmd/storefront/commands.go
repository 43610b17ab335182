package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/api"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/session"
)

type env struct {
	store  *session.Store
	api    *api.API
	out    io.Writer
	errOut io.Writer
}

type command func(ctx context.Context, e *env, args []string) error

var commands = map[string]command{
	"whoami":     whoami,
	"login":      login,
	"register":   register,
	"logout":     logout,
	"cart":       showCart,
	"add":        addItem,
	"add-tablet": addTablet,
	"update":     updateItem,
	"remove":     removeItem,
	"clear":      clearCart,
	"products":   products,
}

func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	return fs
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type identity struct {
	Status string       `json:"status"`
	User   *models.User `json:"user,omitempty"`
}

func (e *env) printIdentity() error {
	st := e.store.Snapshot()
	return e.print(identity{Status: st.Status().String(), User: st.User})
}

// printCart prints the cart held by the session, or an empty cart when the
// backend has none yet.
func (e *env) printCart() error {
	cart := e.store.Snapshot().Cart
	if cart == nil {
		cart = &models.Cart{Items: []models.CartItem{}, Total: "0.00"}
	}
	return e.print(cart)
}

func required(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	return nil
}

func whoami(_ context.Context, e *env, _ []string) error {
	return e.printIdentity()
}

func login(ctx context.Context, e *env, args []string) error {
	fs := e.flags("login")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("%w: -username and -password are required", errUsage)
	}

	if err := e.store.Login(ctx, *username, *password); err != nil {
		return err
	}
	return e.printIdentity()
}

func register(ctx context.Context, e *env, args []string) error {
	fs := e.flags("register")
	var req models.RegisterRequest
	fs.StringVar(&req.Username, "username", "", "account username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.UserType, "user-type", "", "individual, enterprise, school or alumni")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	req.Password2 = req.Password

	if err := e.store.Register(ctx, req); err != nil {
		return err
	}
	return e.printIdentity()
}

func logout(ctx context.Context, e *env, _ []string) error {
	if err := e.store.Logout(ctx); err != nil {
		return err
	}
	return e.printIdentity()
}

func showCart(_ context.Context, e *env, _ []string) error {
	return e.printCart()
}

func addItem(ctx context.Context, e *env, args []string) error {
	fs := e.flags("add")
	product := fs.Int("product", 0, "product id")
	variant := fs.Int("variant", 0, "variant id")
	quantity := fs.Int("quantity", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := required("product", *product); err != nil {
		return err
	}

	var variantID *int
	if *variant > 0 {
		variantID = variant
	}
	if err := e.store.AddToCart(ctx, *product, variantID, *quantity); err != nil {
		return err
	}
	return e.printCart()
}

func addTablet(ctx context.Context, e *env, args []string) error {
	fs := e.flags("add-tablet")
	tablet := fs.Int("tablet", 0, "education tablet id")
	quantity := fs.Int("quantity", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := required("tablet", *tablet); err != nil {
		return err
	}

	if err := e.store.AddEducationTablet(ctx, *tablet, *quantity); err != nil {
		return err
	}
	return e.printCart()
}

func updateItem(ctx context.Context, e *env, args []string) error {
	fs := e.flags("update")
	item := fs.Int("item", 0, "cart item id")
	quantity := fs.Int("quantity", -1, "new quantity, 0 removes the item")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := required("item", *item); err != nil {
		return err
	}
	if *quantity < 0 {
		return fmt.Errorf("%w: -quantity is required", errUsage)
	}

	if err := e.store.UpdateCartItem(ctx, *item, *quantity); err != nil {
		return err
	}
	return e.printCart()
}

func removeItem(ctx context.Context, e *env, args []string) error {
	fs := e.flags("remove")
	item := fs.Int("item", 0, "cart item id")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := required("item", *item); err != nil {
		return err
	}

	if err := e.store.RemoveFromCart(ctx, *item); err != nil {
		return err
	}
	return e.printCart()
}

func clearCart(ctx context.Context, e *env, _ []string) error {
	if err := e.store.ClearCart(ctx); err != nil {
		return err
	}
	return e.printCart()
}

func products(ctx context.Context, e *env, args []string) error {
	fs := e.flags("products")
	productType := fs.String("type", "", "product type filter")
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 0, "page number")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	params := url.Values{}
	if *productType != "" {
		params.Set("type", *productType)
	}
	if *search != "" {
		params.Set("search", *search)
	}
	if *page > 0 {
		params.Set("page", strconv.Itoa(*page))
	}

	result, err := e.api.Products.List(ctx, params)
	if err != nil {
		return err
	}
	return e.print(result)
}
