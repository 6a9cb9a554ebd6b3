package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	sessionStore sessions.Store
}

func NewWishlistHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, sessionStore sessions.Store) *WishlistHandler {
	return &WishlistHandler{
		render:       r,
		productRepo:  productRepo,
		sessionStore: sessionStore,
	}
}

// ToggleWishlist adds the product to the session wishlist if absent,
// removes it if present.
func (h *WishlistHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("ToggleWishlist: product lookup failed for %s: %v", productID, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if product == nil {
		jsonFail(h.render, w, http.StatusOK, "Product not found")
		return
	}

	items := h.sessionStore.Wishlist(r)
	added := true
	next := make([]string, 0, len(items)+1)
	for _, id := range items {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}

	if err := h.sessionStore.SaveWishlist(w, r, next); err != nil {
		log.Printf("ToggleWishlist: failed to save wishlist: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	message := "Added to wishlist"
	if !added {
		message = "Removed from wishlist"
	}
	jsonOK(h.render, w, message, map[string]interface{}{
		"added":          added,
		"wishlist_count": len(next),
	})
}

// GetWishlist resolves the session wishlist against live products,
// preserving insertion order and dropping inactive entries.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ids := h.sessionStore.Wishlist(r)

	products, err := h.productRepo.GetActiveByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("GetWishlist: product lookup failed: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	byID := make(map[string]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	items := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		p := &products[i]

		image := ""
		if len(p.Colors) > 0 && len(p.Colors[0].Images) > 0 {
			image = p.Colors[0].Images[0].Image
		}

		items = append(items, map[string]interface{}{
			"product_id":     p.ID,
			"product_name":   p.Name,
			"product_slug":   p.Slug,
			"price":          p.CurrentPrice,
			"original_price": p.OriginalPrice,
			"image":          image,
			"in_stock":       p.InStock,
		})
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"items":          items,
		"wishlist_count": len(items),
	})
}
