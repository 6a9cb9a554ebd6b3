package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	sessionStore sessions.Store
}

func NewCartHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, sessionStore sessions.Store) *CartHandler {
	return &CartHandler{
		render:       r,
		productRepo:  productRepo,
		sessionStore: sessionStore,
	}
}

// AddToCart adds a product to the session cart, merging quantity into an
// existing line for the same product.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	productID := mux.Vars(r)["id"]
	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("AddToCart: product lookup failed for %s: %v", productID, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if product == nil {
		jsonFail(h.render, w, http.StatusOK, "Product not found")
		return
	}
	if !product.InStock {
		jsonFail(h.render, w, http.StatusOK, "Product is out of stock")
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

	cart := h.sessionStore.Cart(r)
	line := cart[product.ID]
	line.Qty += qty
	line.Color = color
	cart[product.ID] = line

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("AddToCart: failed to save cart: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	jsonOK(h.render, w, "Added to cart", map[string]interface{}{
		"cart_count": len(cart),
	})
}

// UpdateCartItem sets the quantity for a cart line; zero removes it.
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	productID := mux.Vars(r)["id"]
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || qty < 0 {
		jsonFail(h.render, w, http.StatusOK, "Invalid quantity")
		return
	}

	cart := h.sessionStore.Cart(r)
	line, ok := cart[productID]
	if !ok {
		jsonFail(h.render, w, http.StatusOK, "Item not in cart")
		return
	}

	if qty == 0 {
		delete(cart, productID)
	} else {
		line.Qty = qty
		cart[productID] = line
	}

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("UpdateCartItem: failed to save cart: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	jsonOK(h.render, w, "Cart updated", map[string]interface{}{
		"cart_count": len(cart),
	})
}

// RemoveFromCart drops a line from the session cart.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	cart := h.sessionStore.Cart(r)
	if _, ok := cart[productID]; !ok {
		jsonFail(h.render, w, http.StatusOK, "Item not in cart")
		return
	}
	delete(cart, productID)

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("RemoveFromCart: failed to save cart: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	jsonOK(h.render, w, "Removed from cart", map[string]interface{}{
		"cart_count": len(cart),
	})
}

// GetCart resolves cart lines against live products and returns the
// priced cart. Lines whose product has gone inactive are dropped.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.sessionStore.Cart(r)

	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}

	products, err := h.productRepo.GetActiveByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("GetCart: product lookup failed: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	items := make([]map[string]interface{}, 0, len(products))
	subtotal := decimal.Zero
	for i := range products {
		p := &products[i]
		line := cart[p.ID]
		lineTotal := p.CurrentPrice.Mul(decimal.NewFromInt(int64(line.Qty)))
		subtotal = subtotal.Add(lineTotal)

		image := ""
		if len(p.Colors) > 0 && len(p.Colors[0].Images) > 0 {
			image = p.Colors[0].Images[0].Image
		}

		items = append(items, map[string]interface{}{
			"product_id":   p.ID,
			"product_name": p.Name,
			"product_slug": p.Slug,
			"color":        line.Color,
			"quantity":     line.Qty,
			"price":        p.CurrentPrice,
			"line_total":   lineTotal,
			"image":        image,
			"in_stock":     p.InStock,
		})
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"items":            items,
		"cart_count":       len(items),
		"subtotal":         subtotal,
		"subtotal_display": helpers.FormatINR(subtotal),
	})
}
