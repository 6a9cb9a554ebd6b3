package handlers

import (
	"log"
	"net/http"

	"github.com/manovastra/storefront/app/repositories"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render       *render.Render
	bannerRepo   repositories.BannerRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewHomeHandler(r *render.Render, bannerRepo repositories.BannerRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *HomeHandler {
	return &HomeHandler{
		render:       r,
		bannerRepo:   bannerRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Home serves the landing page data: hero banners, active categories and
// the bestseller strip.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerRepo.GetActive(r.Context(), 4)
	if err != nil {
		log.Printf("Home: banner lookup failed: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	categories, err := h.categoryRepo.GetActive(r.Context())
	if err != nil {
		log.Printf("Home: category lookup failed: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	bestsellers, err := h.productRepo.GetBestsellers(r.Context(), 8)
	if err != nil {
		log.Printf("Home: bestseller lookup failed: %v", err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	bannerPayload := make([]map[string]interface{}, 0, len(banners))
	for i := range banners {
		b := &banners[i]
		bannerPayload = append(bannerPayload, map[string]interface{}{
			"title":        b.Title,
			"subtitle":     b.Subtitle,
			"description":  b.Description,
			"image":        b.Image,
			"button_text1": b.ButtonText1,
			"button_link1": b.ButtonLink1,
			"button_text2": b.ButtonText2,
			"button_link2": b.ButtonLink2,
		})
	}

	categoryPayload := make([]map[string]interface{}, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		categoryPayload = append(categoryPayload, map[string]interface{}{
			"name":        c.Name,
			"slug":        c.Slug,
			"description": c.Description,
			"image":       c.Image,
			"gradient":    c.Gradient,
		})
	}

	productPayload := make([]map[string]interface{}, 0, len(bestsellers))
	for i := range bestsellers {
		productPayload = append(productPayload, productCardPayload(&bestsellers[i]))
	}

	jsonOK(h.render, w, "", map[string]interface{}{
		"banners":     bannerPayload,
		"categories":  categoryPayload,
		"bestsellers": productPayload,
	})
}
