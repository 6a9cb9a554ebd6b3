package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/services"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	render          *render.Render
	checkoutService *services.CheckoutService
	productRepo     repositories.ProductRepositoryImpl
	orderRepo       repositories.OrderRepository
	mailer          *services.Mailer
	sessionStore    sessions.Store
	validator       *validator.Validate
}

func NewCheckoutHandler(
	r *render.Render,
	checkoutService *services.CheckoutService,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	mailer *services.Mailer,
	sessionStore sessions.Store,
	validator *validator.Validate,
) *CheckoutHandler {
	return &CheckoutHandler{
		render:          r,
		checkoutService: checkoutService,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		mailer:          mailer,
		sessionStore:    sessionStore,
		validator:       validator,
	}
}

// CheckoutForm is the buyer-entered delivery detail block submitted with
// the payment callback.
type CheckoutForm struct {
	Name         string `validate:"required,min=2,max=200"`
	Email        string `validate:"required,email"`
	Phone        string `validate:"required,min=10,max=15"`
	AddressLine1 string `validate:"required,max=200"`
	AddressLine2 string `validate:"max=200"`
	City         string `validate:"required,max=100"`
	State        string `validate:"required,max=100"`
	Pincode      string `validate:"required,len=6,numeric"`
}

// BuyNow stages a single-product purchase intent in the session and sends
// the buyer to the order summary page. Prices are snapshotted here.
func (h *CheckoutHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	productSlug := mux.Vars(r)["slug"]
	product, err := h.productRepo.GetBySlug(r.Context(), productSlug)
	if err != nil {
		log.Printf("BuyNow: product lookup failed for %s: %v", productSlug, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if product == nil || !product.InStock {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || qty < 1 {
		qty = 1
	}
	color := strings.TrimSpace(r.FormValue("color"))
	if color == "" {
		color = product.PrimaryColor
	}

	image := ""
	for _, c := range product.Colors {
		if c.Name == color && len(c.Images) > 0 {
			image = c.Images[0].Image
			break
		}
	}
	if image == "" && len(product.Colors) > 0 && len(product.Colors[0].Images) > 0 {
		image = product.Colors[0].Images[0].Image
	}

	intent := &sessions.PurchaseIntent{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSlug:   product.Slug,
		Color:         color,
		Qty:           qty,
		Price:         product.CurrentPrice,
		OriginalPrice: product.OriginalPrice,
		Discount:      product.OriginalPrice.Sub(product.CurrentPrice),
		Image:         image,
		Fabric:        product.Fabric,
	}
	if err := h.sessionStore.SetPurchaseIntent(w, r, intent); err != nil {
		log.Printf("BuyNow: failed to stage intent for %s: %v", productSlug, err)
		http.Redirect(w, r, "/product/"+productSlug, http.StatusFound)
		return
	}

	http.Redirect(w, r, "/order-summary", http.StatusFound)
}

// OrderSummary returns the staged intent with computed totals for the
// pre-payment review page.
func (h *CheckoutHandler) OrderSummary(w http.ResponseWriter, r *http.Request) {
	intent, err := h.sessionStore.PurchaseIntent(r)
	if err != nil {
		log.Printf("OrderSummary: %v: %v", services.ErrSessionExpired, err)
		jsonFail(h.render, w, http.StatusOK, "Session expired. Please try again.")
		return
	}
	if intent == nil {
		jsonFail(h.render, w, http.StatusOK, "No item selected for checkout")
		return
	}

	qty := int64(intent.Qty)
	subtotal := intent.OriginalPrice.Mul(decimalFromInt(qty))
	discount := intent.Discount.Mul(decimalFromInt(qty))
	total := subtotal.Sub(discount)

	jsonOK(h.render, w, "", map[string]interface{}{
		"item": map[string]interface{}{
			"product_id":   intent.ProductID,
			"product_name": intent.ProductName,
			"product_slug": intent.ProductSlug,
			"color":        intent.Color,
			"quantity":     intent.Qty,
			"price":        intent.Price,
			"image":        intent.Image,
			"fabric":       intent.Fabric,
		},
		"subtotal":        subtotal,
		"discount":        discount,
		"delivery_charge": "FREE",
		"total_amount":    total,
		"total_display":   helpers.FormatINR(total),
	})
}

// CreateGatewayOrder registers the staged intent with the payment gateway
// and hands the frontend everything the hosted payment page needs.
func (h *CheckoutHandler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	intent, err := h.sessionStore.PurchaseIntent(r)
	if err != nil {
		log.Printf("CreateGatewayOrder: %v: %v", services.ErrSessionExpired, err)
		jsonFail(h.render, w, http.StatusOK, "Session expired. Please try again.")
		return
	}

	gatewayOrderID, amount, err := h.checkoutService.CreateGatewayOrder(r.Context(), intent)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveIntent):
			jsonFail(h.render, w, http.StatusOK, "No item selected for checkout")
		case errors.Is(err, services.ErrGatewayUnavailable):
			log.Printf("CreateGatewayOrder: gateway unreachable: %v", err)
			jsonFail(h.render, w, http.StatusOK, "Payment service is unavailable. Please try again later.")
		default:
			log.Printf("CreateGatewayOrder: %v", err)
			jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	ref := &sessions.GatewayOrderRef{OrderID: gatewayOrderID, Amount: amount}
	if err := h.sessionStore.SetGatewayOrder(w, r, ref); err != nil {
		log.Printf("CreateGatewayOrder: failed to save gateway ref: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"razorpay_order_id": gatewayOrderID,
		"amount":            amount,
		"currency":          "INR",
		"key_id":            h.checkoutService.GatewayKeyID(),
		"product_name":      intent.ProductName,
	})
}

// VerifyPayment authenticates the gateway callback, finalizes the order
// and clears the checkout state. The staged intent survives any failure
// path so the buyer can retry.
func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	cb := services.PaymentCallback{
		GatewayOrderID:   strings.TrimSpace(r.FormValue("razorpay_order_id")),
		GatewayPaymentID: strings.TrimSpace(r.FormValue("razorpay_payment_id")),
		Signature:        strings.TrimSpace(r.FormValue("razorpay_signature")),
	}
	if cb.GatewayOrderID == "" || cb.GatewayPaymentID == "" || cb.Signature == "" {
		jsonFail(h.render, w, http.StatusOK, "Payment verification failed")
		return
	}

	form := CheckoutForm{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		AddressLine1: strings.TrimSpace(r.FormValue("address_line1")),
		AddressLine2: strings.TrimSpace(r.FormValue("address_line2")),
		City:         strings.TrimSpace(r.FormValue("city")),
		State:        strings.TrimSpace(r.FormValue("state")),
		Pincode:      strings.TrimSpace(r.FormValue("pincode")),
	}
	if err := h.validator.Struct(form); err != nil {
		jsonFail(h.render, w, http.StatusOK, "Please fill in all delivery details")
		return
	}

	intent, err := h.sessionStore.PurchaseIntent(r)
	if err != nil {
		log.Printf("VerifyPayment: %v: %v", services.ErrSessionExpired, err)
		jsonFail(h.render, w, http.StatusOK, "Session expired. Please try again.")
		return
	}

	customer := services.CustomerDetails{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		AddressLine1: form.AddressLine1,
		AddressLine2: form.AddressLine2,
		City:         form.City,
		State:        form.State,
		Pincode:      form.Pincode,
	}

	order, err := h.checkoutService.FinalizeOrder(r.Context(), intent, customer, cb)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignatureInvalid):
			jsonFail(h.render, w, http.StatusOK, "Payment verification failed")
		case errors.Is(err, services.ErrNoActiveIntent):
			jsonFail(h.render, w, http.StatusOK, "Session expired. Please try again.")
		default:
			log.Printf("VerifyPayment: finalize failed for gateway order %s: %v", cb.GatewayOrderID, err)
			jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	if err := h.sessionStore.ClearCheckoutState(w, r); err != nil {
		log.Printf("VerifyPayment: failed to clear checkout state for order %s: %v", order.OrderCode, err)
	}

	// Confirmation mail is best effort; the order is already placed.
	if err := h.mailer.SendOrderConfirmationEmail(order.CustomerEmail, order.CustomerName, order.OrderCode, helpers.FormatINR(order.TotalAmount)); err != nil {
		log.Printf("VerifyPayment: confirmation email failed for order %s: %v", order.OrderCode, err)
	}

	jsonOK(h.render, w, "Order placed successfully", map[string]interface{}{
		"order_id":     order.OrderCode,
		"redirect_url": "/order-success/" + order.OrderCode,
	})
}

// OrderSuccess returns the placed order by its public code for the
// confirmation page.
func (h *CheckoutHandler) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["order_id"]
	order, err := h.orderRepo.FindByCode(r.Context(), orderCode)
	if err != nil {
		log.Printf("OrderSuccess: lookup failed for %s: %v", orderCode, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if order == nil {
		jsonFail(h.render, w, http.StatusNotFound, "Order not found")
		return
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"order": orderPayload(order),
	})
}

// MyOrders lists the logged-in buyer's orders, newest first.
func (h *CheckoutHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user := h.sessionStore.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	orders, err := h.orderRepo.FindByCustomerEmail(r.Context(), user.Email)
	if err != nil {
		log.Printf("MyOrders: lookup failed for %s: %v", user.Email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	payload := make([]map[string]interface{}, 0, len(orders))
	for i := range orders {
		payload = append(payload, orderPayload(&orders[i]))
	}
	jsonOK(h.render, w, "", map[string]interface{}{
		"orders": payload,
	})
}
