package routes

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/manovastra/storefront/app/configs"
	"github.com/manovastra/storefront/app/handlers"
	"github.com/manovastra/storefront/app/middlewares"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/services"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto the HTTP
// surface.
func NewRouter(db *gorm.DB, env configs.ENV) (http.Handler, error) {
	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		return nil, err
	}

	rnd := render.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	pincodeRepo := repositories.NewPincodeRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	bannerRepo := repositories.NewBannerRepository(db)

	mailer := services.NewMailer(services.MailConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
	gateway := services.NewRazorpayGateway(configs.GetRazorpayClient(), env.RazorpayKeyID, env.RazorpayKeySecret)
	otpService := services.NewOTPService(db, userRepo, otpRepo, mailer, time.Duration(env.OTPExpiryMinutes)*time.Minute)
	checkoutService := services.NewCheckoutService(db, productRepo, pincodeRepo, orderRepo, orderItemRepo, paymentRepo, gateway)

	homeHandler := handlers.NewHomeHandler(rnd, bannerRepo, categoryRepo, productRepo)
	productHandler := handlers.NewProductHandler(rnd, productRepo)
	cartHandler := handlers.NewCartHandler(rnd, productRepo, sessionStore)
	wishlistHandler := handlers.NewWishlistHandler(rnd, productRepo, sessionStore)
	pincodeHandler := handlers.NewPincodeHandler(rnd, pincodeRepo)
	authHandler := handlers.NewAuthHandler(rnd, otpService, userRepo, sessionStore, validate)
	checkoutHandler := handlers.NewCheckoutHandler(rnd, checkoutService, productRepo, orderRepo, mailer, sessionStore, validate)

	r := mux.NewRouter()
	r.Use(middlewares.CurrentUserMiddleware(sessionStore))

	r.HandleFunc("/", homeHandler.Home).Methods("GET")
	r.HandleFunc("/product/{slug}", productHandler.ProductDetail).Methods("GET")

	r.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	r.HandleFunc("/cart/add/{id}", cartHandler.AddToCart).Methods("POST")
	r.HandleFunc("/cart/update/{id}", cartHandler.UpdateCartItem).Methods("POST")
	r.HandleFunc("/cart/remove/{id}", cartHandler.RemoveFromCart).Methods("POST")

	r.HandleFunc("/wishlist", wishlistHandler.GetWishlist).Methods("GET")
	r.HandleFunc("/wishlist/toggle/{id}", wishlistHandler.ToggleWishlist).Methods("POST")

	r.HandleFunc("/check-pincode", pincodeHandler.CheckPincode).Methods("POST")

	r.HandleFunc("/send-login-otp", authHandler.SendLoginOTP).Methods("POST")
	r.HandleFunc("/verify-login-otp", authHandler.VerifyLoginOTP).Methods("POST")
	r.HandleFunc("/register-user", authHandler.RegisterUser).Methods("POST")
	r.HandleFunc("/verify-registration-otp", authHandler.VerifyRegistrationOTP).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	r.HandleFunc("/check-login-status", authHandler.CheckLoginStatus).Methods("GET")

	r.HandleFunc("/buy-now/{slug}", checkoutHandler.BuyNow).Methods("POST")
	r.HandleFunc("/order-summary", checkoutHandler.OrderSummary).Methods("GET")
	r.HandleFunc("/create-razorpay-order", checkoutHandler.CreateGatewayOrder).Methods("POST")
	r.HandleFunc("/verify-payment", checkoutHandler.VerifyPayment).Methods("POST")
	r.HandleFunc("/order-success/{order_id}", checkoutHandler.OrderSuccess).Methods("GET")

	account := r.PathPrefix("/my-orders").Subrouter()
	account.Use(middlewares.RequireLogin(sessionStore))
	account.HandleFunc("", checkoutHandler.MyOrders).Methods("GET")

	csrfMiddleware := csrf.Protect(
		keys.AuthKey,
		csrf.Secure(env.AppEnv == "production"),
		csrf.Path("/"),
	)

	// The payment gateway posts its callback cross-origin without our CSRF
	// token; the HMAC signature check in the handler authenticates it.
	handler := exemptPaths(csrfMiddleware(r), r, "/verify-payment")
	return handler, nil
}

func exemptPaths(protected, unprotected http.Handler, paths ...string) http.Handler {
	exempt := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		exempt[p] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := exempt[r.URL.Path]; ok {
			unprotected.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	})
}
