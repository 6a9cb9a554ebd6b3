package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/manovastra/storefront/app/models/migrations"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/services"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type stubGateway struct {
	secret  string
	created int
	fail    bool
}

func (s *stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	if s.fail {
		return "", services.ErrGatewayUnavailable
	}
	s.created++
	return fmt.Sprintf("order_test_%d", s.created), nil
}

func (s *stubGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return signature == services.SignCallbackPayload(gatewayOrderID, gatewayPaymentID, s.secret)
}

func (s *stubGateway) KeyID() string { return "rzp_test_key" }

// testApp wires the handler stack onto an in-memory database, with the
// payment gateway stubbed out.
type testApp struct {
	db       *gorm.DB
	store    sessions.Store
	gateway  *stubGateway
	auth     *AuthHandler
	checkout *CheckoutHandler
	cart     *CartHandler
	wishlist *WishlistHandler
	pincode  *PincodeHandler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	rnd := render.New()
	validate := validator.New()
	store := sessions.NewCookieSessionStore([]byte("0123456789abcdef0123456789abcdef"))

	productRepo := repositories.NewProductRepository(db)
	pincodeRepo := repositories.NewPincodeRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	mailer := services.NewMailer(services.MailConfig{})
	gateway := &stubGateway{secret: "s3cr3t"}
	otpService := services.NewOTPService(db, userRepo, otpRepo, mailer, 10*time.Minute)
	checkoutService := services.NewCheckoutService(db, productRepo, pincodeRepo, orderRepo, orderItemRepo, paymentRepo, gateway)

	return &testApp{
		db:       db,
		store:    store,
		gateway:  gateway,
		auth:     NewAuthHandler(rnd, otpService, userRepo, store, validate),
		checkout: NewCheckoutHandler(rnd, checkoutService, productRepo, orderRepo, mailer, store, validate),
		cart:     NewCartHandler(rnd, productRepo, store),
		wishlist: NewWishlistHandler(rnd, productRepo, store),
		pincode:  NewPincodeHandler(rnd, pincodeRepo),
	}
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func carryCookies(r *http.Request, w *httptest.ResponseRecorder) *http.Request {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}
