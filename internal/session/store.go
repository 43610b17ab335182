// Package session holds the client-side session: the authenticated user, the
// token and the shopping cart. The backend owns all of it; the Store keeps the
// last server answer and replaces it wholesale after every call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyToken       = errors.New("backend returned an empty token")
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	User(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type CartAPI interface {
	Get(ctx context.Context, token string) (*models.Cart, error)
	AddItem(ctx context.Context, productID int, variantID *int, quantity int, token string) (*models.Cart, error)
	AddEducationTablet(ctx context.Context, tabletID, quantity int, token string) (*models.Cart, error)
	UpdateItem(ctx context.Context, itemID, quantity int, token string) (*models.Cart, error)
	RemoveItem(ctx context.Context, itemID int, token string) (*models.Cart, error)
	Clear(ctx context.Context, token string) error
}

// TokenStore is the durable home of the token across restarts. Load returns
// "" when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type Option func(*Store)

// WithSerializedMutations runs cart calls one at a time. Without it concurrent
// calls race and whichever response arrives last becomes the cart.
func WithSerializedMutations() Option {
	return func(s *Store) {
		s.serialize = true
	}
}

type subscriber struct {
	id int
	fn func(State)
}

type Store struct {
	auth   AuthAPI
	carts  CartAPI
	tokens TokenStore

	serialize bool
	cartMu    sync.Mutex

	hydrateOnce sync.Once
	hydrateErr  error

	mu    sync.RWMutex
	state State

	// notifyMu keeps snapshots delivered in the order they were taken.
	notifyMu  sync.Mutex
	subMu     sync.Mutex
	nextSubID int
	subs      []subscriber
}

func New(auth AuthAPI, carts CartAPI, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		carts:  carts,
		tokens: tokens,
		state:  State{CartLoading: true, AuthLoading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs synchronously on the goroutine that changed the state and must not
// call mutating Store methods.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) update(fn func(st *State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snap := s.state
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Store) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Hydrate restores the session from the persisted token and loads the cart.
// It runs once; later calls return the first result. A token the backend
// rejects is discarded. The returned error only reports a failing token store,
// in which case the session starts anonymous.
func (s *Store) Hydrate(ctx context.Context) error {
	s.hydrateOnce.Do(func() {
		s.hydrateErr = s.hydrate(ctx)
	})
	return s.hydrateErr
}

func (s *Store) hydrate(ctx context.Context) error {
	token, loadErr := s.tokens.Load(ctx)
	if loadErr != nil {
		token = ""
	}

	if token == "" {
		s.update(func(st *State) { st.AuthLoading = false })
	} else {
		s.update(func(st *State) { st.Token = token })

		user, err := s.auth.User(ctx, token)
		if err != nil {
			if s.dropSession(token) {
				_ = s.tokens.Delete(context.WithoutCancel(ctx))
			}
			s.update(func(st *State) { st.AuthLoading = false })
		} else {
			s.update(func(st *State) {
				if st.Token == token {
					st.User = user
				}
				st.AuthLoading = false
			})
		}
	}

	s.RefreshCart(ctx)

	if loadErr != nil {
		return fmt.Errorf("load token: %w", loadErr)
	}
	return nil
}

// dropSession clears user and token if the session still holds token.
func (s *Store) dropSession(token string) bool {
	dropped := false
	s.update(func(st *State) {
		if st.Token == token {
			st.User = nil
			st.Token = ""
			dropped = true
		}
	})
	return dropped
}

func (s *Store) lockCart() func() {
	if !s.serialize {
		return func() {}
	}
	s.cartMu.Lock()
	return s.cartMu.Unlock
}

// RefreshCart reloads the cart. Any failure, including a cart the backend has
// not created yet, leaves the cart nil; it never returns an error.
func (s *Store) RefreshCart(ctx context.Context) {
	unlock := s.lockCart()
	defer unlock()

	token := s.currentToken()
	s.update(func(st *State) { st.CartLoading = true })

	cart, err := s.carts.Get(ctx, token)
	s.update(func(st *State) {
		if err != nil {
			st.Cart = nil
		} else {
			st.Cart = cart
		}
		st.CartLoading = false
	})
}

func (s *Store) replaceCart(call func(token string) (*models.Cart, error)) error {
	unlock := s.lockCart()
	defer unlock()

	cart, err := call(s.currentToken())
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.Cart = cart })
	return nil
}

// AddToCart adds a catalog product. variantID may be nil; quantity 0 means 1.
func (s *Store) AddToCart(ctx context.Context, productID int, variantID *int, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}
	return s.replaceCart(func(token string) (*models.Cart, error) {
		return s.carts.AddItem(ctx, productID, variantID, quantity, token)
	})
}

func (s *Store) AddEducationTablet(ctx context.Context, tabletID, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}
	return s.replaceCart(func(token string) (*models.Cart, error) {
		return s.carts.AddEducationTablet(ctx, tabletID, quantity, token)
	})
}

func (s *Store) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	return s.replaceCart(func(token string) (*models.Cart, error) {
		return s.carts.UpdateItem(ctx, itemID, quantity, token)
	})
}

func (s *Store) RemoveFromCart(ctx context.Context, itemID int) error {
	return s.replaceCart(func(token string) (*models.Cart, error) {
		return s.carts.RemoveItem(ctx, itemID, token)
	})
}

// ClearCart empties the cart on the backend and drops the local copy.
func (s *Store) ClearCart(ctx context.Context) error {
	unlock := s.lockCart()
	defer unlock()

	if err := s.carts.Clear(ctx, s.currentToken()); err != nil {
		return err
	}
	s.update(func(st *State) { st.Cart = nil })
	return nil
}

// Login authenticates, persists the token and then reloads the cart so a
// guest cart merged by the backend shows up. On failure nothing changes.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.establish(ctx, resp); err != nil {
		return err
	}
	s.RefreshCart(ctx)
	return nil
}

// Register creates the account and signs in with the returned token. Unlike
// Login it does not reload the cart.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

func (s *Store) establish(ctx context.Context, resp *models.AuthResponse) error {
	if resp.Token == "" {
		return ErrEmptyToken
	}
	if err := s.tokens.Save(ctx, resp.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	user := resp.User
	s.update(func(st *State) {
		st.User = &user
		st.Token = resp.Token
	})
	return nil
}

// Logout always ends anonymous. The backend call is best effort; only a
// failure to delete the persisted token is reported, after local state is
// already cleared.
func (s *Store) Logout(ctx context.Context) error {
	if token := s.currentToken(); token != "" {
		_ = s.auth.Logout(ctx, token)
	}

	s.update(func(st *State) {
		st.User = nil
		st.Token = ""
	})

	if err := s.tokens.Delete(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// RefreshUser re-reads the profile of the signed-in user. If the backend no
// longer accepts the token the session falls back to anonymous.
func (s *Store) RefreshUser(ctx context.Context) error {
	token := s.currentToken()
	if token == "" {
		return ErrNotAuthenticated
	}

	user, err := s.auth.User(ctx, token)
	if err != nil {
		if s.dropSession(token) {
			if delErr := s.tokens.Delete(context.WithoutCancel(ctx)); delErr != nil {
				return errors.Join(err, fmt.Errorf("delete token: %w", delErr))
			}
		}
		return err
	}

	s.update(func(st *State) {
		if st.Token == token {
			st.User = user
		}
	})
	return nil
}
