package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authMock struct{ mock.Mock }

func (m *authMock) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *authMock) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *authMock) User(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *authMock) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type cartMock struct{ mock.Mock }

func (m *cartMock) Get(ctx context.Context, token string) (*models.Cart, error) {
	args := m.Called(ctx, token)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *cartMock) AddItem(ctx context.Context, productID int, variantID *int, quantity int, token string) (*models.Cart, error) {
	args := m.Called(ctx, productID, variantID, quantity, token)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *cartMock) AddEducationTablet(ctx context.Context, tabletID, quantity int, token string) (*models.Cart, error) {
	args := m.Called(ctx, tabletID, quantity, token)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *cartMock) UpdateItem(ctx context.Context, itemID, quantity int, token string) (*models.Cart, error) {
	args := m.Called(ctx, itemID, quantity, token)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *cartMock) RemoveItem(ctx context.Context, itemID int, token string) (*models.Cart, error) {
	args := m.Called(ctx, itemID, token)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *cartMock) Clear(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type brokenTokens struct {
	loadErr, saveErr, deleteErr error
}

func (b brokenTokens) Load(context.Context) (string, error) { return "", b.loadErr }
func (b brokenTokens) Save(context.Context, string) error   { return b.saveErr }
func (b brokenTokens) Delete(context.Context) error         { return b.deleteErr }

var errUnauthorized = &apiclient.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid token."}

func cartWith(id, count int) *models.Cart {
	return &models.Cart{ID: id, CartID: "cart", ItemCount: count, Total: "0.00"}
}

func alice() models.User {
	return models.User{ID: 7, Username: "alice", Email: "alice@example.com"}
}

type fixture struct {
	auth   *authMock
	carts  *cartMock
	tokens *tokenstore.Memory
	store  *Store
}

func newFixture(t *testing.T, token string, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{auth: &authMock{}, carts: &cartMock{}, tokens: tokenstore.NewMemory(token)}
	f.store = New(f.auth, f.carts, f.tokens, opts...)
	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.carts.AssertExpectations(t)
	})
	return f
}

func (f *fixture) persisted(t *testing.T) string {
	t.Helper()
	tok, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	return tok
}

// signIn puts the store into an authenticated state through Login.
func (f *fixture) signIn(t *testing.T, token string) {
	t.Helper()
	user := alice()
	f.auth.On("Login", mock.Anything, "alice", "secret").
		Return(&models.AuthResponse{User: user, Token: token}, nil).Once()
	f.carts.On("Get", mock.Anything, token).Return(cartWith(1, 0), nil).Once()
	require.NoError(t, f.store.Login(context.Background(), "alice", "secret"))
}

func TestNew_StartsLoadingAndUnknown(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	st := f.store.Snapshot()

	assert.True(t, st.CartLoading)
	assert.True(t, st.AuthLoading)
	assert.Nil(t, st.Cart)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	assert.Equal(t, StatusUnknown, st.Status())
	assert.False(t, st.IsAuthenticated())
}

func TestHydrate_NoToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("Get", mock.Anything, "").Return(cartWith(1, 2), nil).Once()

	require.NoError(t, f.store.Hydrate(context.Background()))

	st := f.store.Snapshot()
	assert.False(t, st.AuthLoading)
	assert.False(t, st.CartLoading)
	assert.Equal(t, StatusAnonymous, st.Status())
	require.NotNil(t, st.Cart)
	assert.Equal(t, 2, st.Cart.ItemCount)
	f.auth.AssertNotCalled(t, "User", mock.Anything, mock.Anything)
}

func TestHydrate_ValidToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "tok-1")
	user := alice()
	f.auth.On("User", mock.Anything, "tok-1").Return(&user, nil).Once()
	f.carts.On("Get", mock.Anything, "tok-1").Return(cartWith(3, 1), nil).Once()

	require.NoError(t, f.store.Hydrate(context.Background()))

	st := f.store.Snapshot()
	assert.Equal(t, StatusAuthenticated, st.Status())
	assert.Equal(t, "tok-1", st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, "alice", st.User.Username)
	assert.Equal(t, 3, st.Cart.ID)
}

func TestHydrate_RejectedTokenIsDiscarded(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "stale")
	f.auth.On("User", mock.Anything, "stale").Return(nil, errUnauthorized).Once()
	f.carts.On("Get", mock.Anything, "").Return(cartWith(1, 0), nil).Once()

	require.NoError(t, f.store.Hydrate(context.Background()))

	st := f.store.Snapshot()
	assert.Equal(t, StatusAnonymous, st.Status())
	assert.Empty(t, st.Token)
	assert.Nil(t, st.User)
	assert.Empty(t, f.persisted(t))
}

func TestHydrate_CartFailureLeavesCartNil(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("Get", mock.Anything, "").
		Return(nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "Not found."}).Once()

	require.NoError(t, f.store.Hydrate(context.Background()))

	st := f.store.Snapshot()
	assert.Nil(t, st.Cart)
	assert.False(t, st.CartLoading)
}

func TestHydrate_TokenStoreFailureStartsAnonymous(t *testing.T) {
	t.Parallel()

	auth, carts := &authMock{}, &cartMock{}
	carts.On("Get", mock.Anything, "").Return(cartWith(1, 0), nil).Once()
	loadErr := errors.New("disk gone")
	store := New(auth, carts, brokenTokens{loadErr: loadErr})

	err := store.Hydrate(context.Background())
	require.ErrorIs(t, err, loadErr)

	st := store.Snapshot()
	assert.Equal(t, StatusAnonymous, st.Status())
	assert.NotNil(t, st.Cart)
	carts.AssertExpectations(t)
}

func TestHydrate_RunsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("Get", mock.Anything, "").Return(cartWith(1, 0), nil).Once()

	require.NoError(t, f.store.Hydrate(context.Background()))
	require.NoError(t, f.store.Hydrate(context.Background()))

	f.carts.AssertNumberOfCalls(t, "Get", 1)
}

func TestAddToCart_ReplacesCartWithResponse(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	variant := 5
	f.carts.On("AddItem", mock.Anything, 42, &variant, 2, "").Return(cartWith(1, 2), nil).Once()

	require.NoError(t, f.store.AddToCart(context.Background(), 42, &variant, 2))

	st := f.store.Snapshot()
	require.NotNil(t, st.Cart)
	assert.Equal(t, 2, st.Cart.ItemCount)
}

func TestAddToCart_ZeroQuantityMeansOne(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("AddItem", mock.Anything, 42, (*int)(nil), 1, "").Return(cartWith(1, 1), nil).Once()

	require.NoError(t, f.store.AddToCart(context.Background(), 42, nil, 0))
}

func TestCartMutations_FailureKeepsPreviousCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").Return(cartWith(1, 1), nil).Once()
	require.NoError(t, f.store.AddToCart(context.Background(), 1, nil, 1))
	before := f.store.Snapshot().Cart

	outOfStock := &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock"}
	f.carts.On("UpdateItem", mock.Anything, 10, 99, "").Return(nil, outOfStock).Once()
	f.carts.On("RemoveItem", mock.Anything, 11, "").Return(nil, outOfStock).Once()
	f.carts.On("AddEducationTablet", mock.Anything, 3, 1, "").Return(nil, outOfStock).Once()
	f.carts.On("Clear", mock.Anything, "").Return(outOfStock).Once()

	ctx := context.Background()
	assert.EqualError(t, f.store.UpdateCartItem(ctx, 10, 99), "Insufficient stock")
	assert.EqualError(t, f.store.RemoveFromCart(ctx, 11), "Insufficient stock")
	assert.EqualError(t, f.store.AddEducationTablet(ctx, 3, 1), "Insufficient stock")
	assert.EqualError(t, f.store.ClearCart(ctx), "Insufficient stock")

	assert.Same(t, before, f.store.Snapshot().Cart)
}

func TestCartMutations_UseCurrentToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.signIn(t, "tok-a")

	ctx := context.Background()
	f.carts.On("UpdateItem", mock.Anything, 10, 3, "tok-a").Return(cartWith(1, 3), nil).Once()
	f.carts.On("RemoveItem", mock.Anything, 10, "tok-a").Return(cartWith(1, 0), nil).Once()
	f.carts.On("AddEducationTablet", mock.Anything, 4, 2, "tok-a").Return(cartWith(1, 2), nil).Once()
	f.carts.On("Clear", mock.Anything, "tok-a").Return(nil).Once()

	require.NoError(t, f.store.UpdateCartItem(ctx, 10, 3))
	assert.Equal(t, 3, f.store.Snapshot().Cart.ItemCount)

	require.NoError(t, f.store.RemoveFromCart(ctx, 10))
	assert.Equal(t, 0, f.store.Snapshot().Cart.ItemCount)

	require.NoError(t, f.store.AddEducationTablet(ctx, 4, 2))
	assert.Equal(t, 2, f.store.Snapshot().Cart.ItemCount)

	require.NoError(t, f.store.ClearCart(ctx))
	assert.Nil(t, f.store.Snapshot().Cart)
}

func TestLogin_PersistsTokenAndRefreshesCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.signIn(t, "tok-a")

	st := f.store.Snapshot()
	assert.Equal(t, "tok-a", st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, 7, st.User.ID)
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, "tok-a", f.persisted(t))
}

func TestLogin_FailureChangesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	invalid := &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid credentials"}
	f.auth.On("Login", mock.Anything, "alice", "wrong").Return(nil, invalid).Once()

	err := f.store.Login(context.Background(), "alice", "wrong")
	require.EqualError(t, err, "Invalid credentials")

	st := f.store.Snapshot()
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	assert.Empty(t, f.persisted(t))
	f.carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLogin_PersistFailureChangesNothing(t *testing.T) {
	t.Parallel()

	auth, carts := &authMock{}, &cartMock{}
	saveErr := errors.New("read-only")
	store := New(auth, carts, brokenTokens{saveErr: saveErr})
	auth.On("Login", mock.Anything, "alice", "secret").
		Return(&models.AuthResponse{User: alice(), Token: "tok-a"}, nil).Once()

	err := store.Login(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, saveErr)

	st := store.Snapshot()
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	auth.AssertExpectations(t)
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.auth.On("Login", mock.Anything, "alice", "secret").
		Return(&models.AuthResponse{User: alice()}, nil).Once()

	require.ErrorIs(t, f.store.Login(context.Background(), "alice", "secret"), ErrEmptyToken)
	assert.Nil(t, f.store.Snapshot().User)
}

func TestLogin_ShowsMergedGuestCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	ctx := context.Background()

	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").Return(cartWith(10, 1), nil).Once()
	require.NoError(t, f.store.AddToCart(ctx, 1, nil, 1))
	assert.Equal(t, 1, f.store.Snapshot().Cart.ItemCount)

	f.auth.On("Login", mock.Anything, "alice", "secret").
		Return(&models.AuthResponse{User: alice(), Token: "tok-a"}, nil).Once()
	f.carts.On("Get", mock.Anything, "tok-a").Return(cartWith(20, 3), nil).Once()

	require.NoError(t, f.store.Login(ctx, "alice", "secret"))

	st := f.store.Snapshot()
	assert.Equal(t, 20, st.Cart.ID)
	assert.Equal(t, 3, st.Cart.ItemCount)
}

func TestRegister_SignsInWithoutCartRefresh(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	req := models.RegisterRequest{Email: "bob@example.com", Username: "bob", Password: "pw", Password2: "pw"}
	bob := models.User{ID: 8, Username: "bob"}
	f.auth.On("Register", mock.Anything, req).Return(&models.AuthResponse{User: bob, Token: "tok-b"}, nil).Once()

	require.NoError(t, f.store.Register(context.Background(), req))

	st := f.store.Snapshot()
	assert.Equal(t, "tok-b", st.Token)
	assert.Equal(t, "bob", st.User.Username)
	assert.Equal(t, "tok-b", f.persisted(t))
	f.carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLogout_ClearsEvenWhenBackendFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.signIn(t, "tok-a")
	f.auth.On("Logout", mock.Anything, "tok-a").Return(errors.New("connection refused")).Once()

	require.NoError(t, f.store.Logout(context.Background()))

	st := f.store.Snapshot()
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	assert.Equal(t, StatusAnonymous, st.Status())
	assert.Empty(t, f.persisted(t))
}

func TestLogout_AnonymousSkipsBackend(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	require.NoError(t, f.store.Logout(context.Background()))
	f.auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogout_ReportsTokenStoreFailureAfterClearing(t *testing.T) {
	t.Parallel()

	auth, carts := &authMock{}, &cartMock{}
	deleteErr := errors.New("locked")
	store := New(auth, carts, brokenTokens{deleteErr: deleteErr})

	err := store.Logout(context.Background())
	require.ErrorIs(t, err, deleteErr)
	assert.Empty(t, store.Snapshot().Token)
}

func TestRefreshUser(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		require.ErrorIs(t, f.store.RefreshUser(context.Background()), ErrNotAuthenticated)
	})

	t.Run("updates profile", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		f.signIn(t, "tok-a")

		renamed := alice()
		renamed.FirstName = "Alice"
		f.auth.On("User", mock.Anything, "tok-a").Return(&renamed, nil).Once()

		require.NoError(t, f.store.RefreshUser(context.Background()))
		assert.Equal(t, "Alice", f.store.Snapshot().User.FirstName)
	})

	t.Run("rejected token signs out", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		f.signIn(t, "tok-a")
		f.auth.On("User", mock.Anything, "tok-a").Return(nil, errUnauthorized).Once()

		err := f.store.RefreshUser(context.Background())
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)

		st := f.store.Snapshot()
		assert.Equal(t, StatusAnonymous, st.Status())
		assert.Empty(t, f.persisted(t))
	})
}

func TestSubscribe_ReceivesSnapshotsInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	var (
		mu    sync.Mutex
		calls []string
		seen  []State
	)
	unsubA := f.store.Subscribe(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "a")
		seen = append(seen, st)
	})
	f.store.Subscribe(func(State) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "b")
	})

	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").Return(cartWith(1, 1), nil).Once()
	require.NoError(t, f.store.AddToCart(context.Background(), 1, nil, 1))

	mu.Lock()
	assert.Equal(t, []string{"a", "b"}, calls)
	require.Len(t, seen, 1)
	assert.Equal(t, 1, seen[0].Cart.ItemCount)
	mu.Unlock()

	unsubA()
	unsubA()

	f.carts.On("RemoveItem", mock.Anything, 1, "").Return(cartWith(1, 0), nil).Once()
	require.NoError(t, f.store.RemoveFromCart(context.Background(), 1))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "b"}, calls)
	assert.Len(t, seen, 1)
}

func TestConcurrentMutations_LastResponseWins(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	started := make(chan struct{})
	release := make(chan struct{})

	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(cartWith(1, 1), nil).Once()
	f.carts.On("AddItem", mock.Anything, 2, (*int)(nil), 1, "").Return(cartWith(2, 2), nil).Once()

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- f.store.AddToCart(ctx, 1, nil, 1) }()
	<-started

	require.NoError(t, f.store.AddToCart(ctx, 2, nil, 1))
	assert.Equal(t, 2, f.store.Snapshot().Cart.ID)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.store.Snapshot().Cart.ID)
}

func TestWithSerializedMutations_RunsOneAtATime(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", WithSerializedMutations())
	started := make(chan int, 2)
	release := make(chan struct{})

	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").
		Run(func(mock.Arguments) {
			started <- 1
			<-release
		}).
		Return(cartWith(1, 1), nil).Once()
	f.carts.On("AddItem", mock.Anything, 2, (*int)(nil), 1, "").
		Run(func(mock.Arguments) { started <- 2 }).
		Return(cartWith(2, 2), nil).Once()

	ctx := context.Background()
	first := make(chan error, 1)
	second := make(chan error, 1)

	go func() { first <- f.store.AddToCart(ctx, 1, nil, 1) }()
	require.Equal(t, 1, <-started)

	go func() { second <- f.store.AddToCart(ctx, 2, nil, 1) }()
	select {
	case <-started:
		t.Fatal("second mutation reached the backend while the first was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	require.Equal(t, 2, <-started)
	require.NoError(t, <-second)

	assert.Equal(t, 2, f.store.Snapshot().Cart.ID)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "anonymous", StatusAnonymous.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
}

func TestAddToCart_ThenView(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	productID := 42
	echoed := &models.Cart{
		Items: []models.CartItem{{
			ID: 1, ProductID: &productID, Quantity: 2, UnitPrice: "100.00", TotalPrice: "200.00",
		}},
		ItemCount: 2,
	}
	f.carts.On("AddItem", mock.Anything, 42, (*int)(nil), 2, "").Return(echoed, nil).Once()

	require.NoError(t, f.store.AddToCart(context.Background(), 42, nil, 2))

	st := f.store.Snapshot()
	assert.Same(t, echoed, st.Cart)
	assert.Equal(t, 2, st.Cart.ItemCount)
	assert.Equal(t, models.Price("200.00"), st.Cart.Items[0].TotalPrice)
}

func TestRefreshCart_FailureIsSilent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.carts.On("AddItem", mock.Anything, 1, (*int)(nil), 1, "").Return(cartWith(1, 1), nil).Once()
	require.NoError(t, f.store.AddToCart(context.Background(), 1, nil, 1))

	f.carts.On("Get", mock.Anything, "").Return(nil, errors.New("connection reset")).Once()

	var loading []bool
	unsubscribe := f.store.Subscribe(func(st State) { loading = append(loading, st.CartLoading) })
	defer unsubscribe()

	f.store.RefreshCart(context.Background())

	st := f.store.Snapshot()
	assert.Nil(t, st.Cart)
	assert.False(t, st.CartLoading)
	assert.Equal(t, []bool{true, false}, loading)
}
