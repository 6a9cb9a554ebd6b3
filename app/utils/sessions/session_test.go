package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore([]byte("0123456789abcdef0123456789abcdef"))
}

// withCookies builds a follow-up request carrying the cookies the
// previous response set.
func withCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCartRoundtrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	cart := map[string]CartLine{
		"prod-1": {Qty: 2, Color: "Royal Red"},
		"prod-2": {Qty: 1, Color: "Emerald Green"},
	}
	require.NoError(t, store.SaveCart(w, r, cart))

	got := store.Cart(withCookies(w))
	require.Equal(t, cart, got)
}

func TestCartEmptyByDefault(t *testing.T) {
	store := newTestStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, store.Cart(r))
}

func TestWishlistRoundtrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, store.SaveWishlist(w, r, []string{"prod-1", "prod-2"}))
	require.Equal(t, []string{"prod-1", "prod-2"}, store.Wishlist(withCookies(w)))
}

func TestPurchaseIntentRoundtrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	intent := &PurchaseIntent{
		ProductID:     "prod-1",
		ProductName:   "Kanjivaram Silk Saree",
		ProductSlug:   "kanjivaram-silk-saree",
		Color:         "Royal Red",
		Qty:           2,
		Price:         decimal.RequireFromString("1000.00"),
		OriginalPrice: decimal.RequireFromString("1250.00"),
		Discount:      decimal.RequireFromString("250.00"),
	}
	require.NoError(t, store.SetPurchaseIntent(w, r, intent))

	got, err := store.PurchaseIntent(withCookies(w))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, intent.ProductID, got.ProductID)
	require.Equal(t, intent.Qty, got.Qty)
	require.True(t, intent.Price.Equal(got.Price))
	require.True(t, intent.OriginalPrice.Equal(got.OriginalPrice))
}

func TestPurchaseIntentMissingIsNilNil(t *testing.T) {
	store := newTestStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	intent, err := store.PurchaseIntent(r)
	require.NoError(t, err)
	require.Nil(t, intent)
}

func TestPurchaseIntentUndecodableCookie(t *testing.T) {
	store := newTestStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-session"})

	_, err := store.PurchaseIntent(r)
	require.Error(t, err)
}

func TestClearCheckoutState(t *testing.T) {
	store := newTestStore()

	w1 := httptest.NewRecorder()
	require.NoError(t, store.SetPurchaseIntent(w1, httptest.NewRequest(http.MethodGet, "/", nil), &PurchaseIntent{ProductID: "prod-1", Qty: 1}))

	w2 := httptest.NewRecorder()
	require.NoError(t, store.SetGatewayOrder(w2, withCookies(w1), &GatewayOrderRef{OrderID: "order_test_1", Amount: 100000}))

	staged := withCookies(w2)
	intent, err := store.PurchaseIntent(staged)
	require.NoError(t, err)
	require.NotNil(t, intent)
	require.NotNil(t, store.GatewayOrder(staged))

	w3 := httptest.NewRecorder()
	require.NoError(t, store.ClearCheckoutState(w3, withCookies(w2)))

	cleared := withCookies(w3)
	intent, err = store.PurchaseIntent(cleared)
	require.NoError(t, err)
	require.Nil(t, intent)
	require.Nil(t, store.GatewayOrder(cleared))
}

func TestCurrentUserRoundtrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.Nil(t, store.CurrentUser(r))
	require.NoError(t, store.SetCurrentUser(w, r, SessionUser{ID: "user-1", Email: "buyer@example.com", Name: "Test Buyer"}))

	got := store.CurrentUser(withCookies(w))
	require.NotNil(t, got)
	require.Equal(t, "user-1", got.ID)
	require.Equal(t, "buyer@example.com", got.Email)

	w2 := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(w2, withCookies(w)))
	require.Nil(t, store.CurrentUser(withCookies(w2)))
}
