package sessions

import (
	"encoding/gob"
	"net/http"
	"time"

	gsessions "github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

const (
	sessionCookieName = "manovastra-session"

	userIDKey     = "user_id"
	userEmailKey  = "user_email"
	userNameKey   = "user_name"
	loggedInKey   = "is_logged_in"
	cartKey       = "cart"
	wishlistKey   = "wishlist"
	intentKey     = "buy_now_item"
	gatewayRefKey = "razorpay_order"
	stagedRegKey  = "temp_registration"
)

// CartLine is one session cart entry, keyed by product ID.
type CartLine struct {
	Qty   int
	Color string
}

// PurchaseIntent is the buyer's staged single-item selection. Prices are
// snapshotted at selection time; checkout charges the snapshot, never a
// live re-read.
type PurchaseIntent struct {
	ProductID     string
	ProductName   string
	ProductSlug   string
	Color         string
	Qty           int
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      decimal.Decimal
	Image         string
	Fabric        string
}

// GatewayOrderRef correlates the two redirect legs of a checkout.
type GatewayOrderRef struct {
	OrderID string
	Amount  int64
}

// StagedRegistration holds profile data pending OTP confirmation. The
// password arrives already bcrypt-hashed.
type StagedRegistration struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}

func init() {
	gob.Register(map[string]CartLine{})
	gob.Register([]string{})
	gob.Register(&PurchaseIntent{})
	gob.Register(&GatewayOrderRef{})
	gob.Register(&StagedRegistration{})
}

type SessionUser struct {
	ID    string
	Email string
	Name  string
}

type Store interface {
	CurrentUser(r *http.Request) *SessionUser
	SetCurrentUser(w http.ResponseWriter, r *http.Request, user SessionUser) error
	ClearSession(w http.ResponseWriter, r *http.Request) error

	Cart(r *http.Request) map[string]CartLine
	SaveCart(w http.ResponseWriter, r *http.Request, cart map[string]CartLine) error

	Wishlist(r *http.Request) []string
	SaveWishlist(w http.ResponseWriter, r *http.Request, items []string) error

	PurchaseIntent(r *http.Request) (*PurchaseIntent, error)
	SetPurchaseIntent(w http.ResponseWriter, r *http.Request, intent *PurchaseIntent) error

	GatewayOrder(r *http.Request) *GatewayOrderRef
	SetGatewayOrder(w http.ResponseWriter, r *http.Request, ref *GatewayOrderRef) error
	ClearCheckoutState(w http.ResponseWriter, r *http.Request) error

	StagedRegistration(r *http.Request) *StagedRegistration
	SetStagedRegistration(w http.ResponseWriter, r *http.Request, staged *StagedRegistration) error
	ClearStagedRegistration(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *gsessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := gsessions.NewCookieStore(keyPairs...)

	store.Options = &gsessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) (*gsessions.Session, error) {
	return c.store.Get(r, sessionCookieName)
}

func (c *CookieSessionStore) CurrentUser(r *http.Request) *SessionUser {
	session, _ := c.getSession(r)
	if session == nil {
		return nil
	}
	loggedIn, _ := session.Values[loggedInKey].(bool)
	if !loggedIn {
		return nil
	}
	id, _ := session.Values[userIDKey].(string)
	email, _ := session.Values[userEmailKey].(string)
	name, _ := session.Values[userNameKey].(string)
	if id == "" {
		return nil
	}
	return &SessionUser{ID: id, Email: email, Name: name}
}

func (c *CookieSessionStore) SetCurrentUser(w http.ResponseWriter, r *http.Request, user SessionUser) error {
	session, _ := c.getSession(r)
	session.Values[userIDKey] = user.ID
	session.Values[userEmailKey] = user.Email
	session.Values[userNameKey] = user.Name
	session.Values[loggedInKey] = true
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (c *CookieSessionStore) Cart(r *http.Request) map[string]CartLine {
	session, _ := c.getSession(r)
	if cart, ok := session.Values[cartKey].(map[string]CartLine); ok {
		return cart
	}
	return map[string]CartLine{}
}

func (c *CookieSessionStore) SaveCart(w http.ResponseWriter, r *http.Request, cart map[string]CartLine) error {
	session, _ := c.getSession(r)
	session.Values[cartKey] = cart
	return session.Save(r, w)
}

func (c *CookieSessionStore) Wishlist(r *http.Request) []string {
	session, _ := c.getSession(r)
	if items, ok := session.Values[wishlistKey].([]string); ok {
		return items
	}
	return nil
}

func (c *CookieSessionStore) SaveWishlist(w http.ResponseWriter, r *http.Request, items []string) error {
	session, _ := c.getSession(r)
	session.Values[wishlistKey] = items
	return session.Save(r, w)
}

// PurchaseIntent returns the staged intent, or an error when the session
// cookie exists but cannot be decoded (treated as an expired session by
// callers). A missing intent in a readable session returns nil, nil.
func (c *CookieSessionStore) PurchaseIntent(r *http.Request) (*PurchaseIntent, error) {
	session, err := c.getSession(r)
	if err != nil {
		return nil, err
	}
	if intent, ok := session.Values[intentKey].(*PurchaseIntent); ok {
		return intent, nil
	}
	return nil, nil
}

func (c *CookieSessionStore) SetPurchaseIntent(w http.ResponseWriter, r *http.Request, intent *PurchaseIntent) error {
	session, _ := c.getSession(r)
	session.Values[intentKey] = intent
	return session.Save(r, w)
}

func (c *CookieSessionStore) GatewayOrder(r *http.Request) *GatewayOrderRef {
	session, _ := c.getSession(r)
	if ref, ok := session.Values[gatewayRefKey].(*GatewayOrderRef); ok {
		return ref
	}
	return nil
}

func (c *CookieSessionStore) SetGatewayOrder(w http.ResponseWriter, r *http.Request, ref *GatewayOrderRef) error {
	session, _ := c.getSession(r)
	session.Values[gatewayRefKey] = ref
	return session.Save(r, w)
}

// ClearCheckoutState drops the staged intent and the gateway order ref in
// one save. Called exactly once, after a successful finalization, which
// is what makes callback replays fail closed.
func (c *CookieSessionStore) ClearCheckoutState(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.getSession(r)
	delete(session.Values, intentKey)
	delete(session.Values, gatewayRefKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) StagedRegistration(r *http.Request) *StagedRegistration {
	session, _ := c.getSession(r)
	if staged, ok := session.Values[stagedRegKey].(*StagedRegistration); ok {
		return staged
	}
	return nil
}

func (c *CookieSessionStore) SetStagedRegistration(w http.ResponseWriter, r *http.Request, staged *StagedRegistration) error {
	session, _ := c.getSession(r)
	session.Values[stagedRegKey] = staged
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearStagedRegistration(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.getSession(r)
	delete(session.Values, stagedRegKey)
	return session.Save(r, w)
}
