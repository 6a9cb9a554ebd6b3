package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl) *ProductHandler {
	return &ProductHandler{render: r, productRepo: productRepo}
}

// productCardPayload shapes a product for listing strips.
func productCardPayload(p *models.Product) map[string]interface{} {
	image := ""
	if len(p.Colors) > 0 && len(p.Colors[0].Images) > 0 {
		image = p.Colors[0].Images[0].Image
	}
	return map[string]interface{}{
		"product_id":       p.ID,
		"name":             p.Name,
		"slug":             p.Slug,
		"brand":            p.Brand,
		"current_price":    p.CurrentPrice,
		"original_price":   p.OriginalPrice,
		"discount_percent": p.DiscountPercent,
		"price_display":    helpers.FormatINR(p.CurrentPrice),
		"rating":           p.Rating,
		"rating_count":     p.RatingCount,
		"badge_text":       p.BadgeText(),
		"image":            image,
		"in_stock":         p.InStock,
	}
}

// ProductDetail returns the full product page data: pricing, attributes,
// color variants with their gradients and ordered images.
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productSlug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), productSlug)
	if err != nil {
		log.Printf("ProductDetail: lookup failed for %s: %v", productSlug, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if product == nil {
		jsonFail(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	colors := make([]map[string]interface{}, 0, len(product.Colors))
	for i := range product.Colors {
		c := &product.Colors[i]
		images := make([]string, 0, len(c.Images))
		for _, img := range c.Images {
			images = append(images, img.Image)
		}
		colors = append(colors, map[string]interface{}{
			"name":     c.Name,
			"gradient": c.Gradient,
			"images":   images,
		})
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"product": map[string]interface{}{
			"product_id":       product.ID,
			"name":             product.Name,
			"slug":             product.Slug,
			"brand":            product.Brand,
			"description":      product.Description,
			"category":         product.Category.Name,
			"category_slug":    product.Category.Slug,
			"current_price":    product.CurrentPrice,
			"original_price":   product.OriginalPrice,
			"discount_percent": product.DiscountPercent,
			"price_display":    helpers.FormatINR(product.CurrentPrice),
			"rating":           product.Rating,
			"rating_count":     product.RatingCount,
			"review_count":     product.ReviewCount,
			"badge_text":       product.BadgeText(),

			"fabric":       product.Fabric,
			"length":       product.Length,
			"blouse_piece": product.BlousePiece,
			"weave_type":   product.WeaveType,
			"work_details": product.WorkDetails,
			"occasions":    product.OccasionsList(),

			"in_stock":      product.InStock,
			"is_bestseller": product.IsBestseller,
			"colors":        colors,
		},
	})
}
