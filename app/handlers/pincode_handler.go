package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/manovastra/storefront/app/repositories"
	"github.com/unrolled/render"
)

const deliveryDateFormat = "02 Jan, Monday"

type PincodeHandler struct {
	render      *render.Render
	pincodeRepo repositories.PincodeRepositoryImpl
}

func NewPincodeHandler(r *render.Render, pincodeRepo repositories.PincodeRepositoryImpl) *PincodeHandler {
	return &PincodeHandler{render: r, pincodeRepo: pincodeRepo}
}

// CheckPincode reports serviceability and delivery estimates for a
// six-digit pincode.
func (h *PincodeHandler) CheckPincode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	code := strings.TrimSpace(r.FormValue("pincode"))
	if len(code) != 6 {
		jsonFail(h.render, w, http.StatusOK, "Please enter a valid 6-digit pincode")
		return
	}

	pin, err := h.pincodeRepo.FindServiceable(r.Context(), code)
	if err != nil {
		log.Printf("CheckPincode: lookup failed for %s: %v", code, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if pin == nil {
		jsonFail(h.render, w, http.StatusOK, "Sorry, we do not deliver to this pincode yet")
		return
	}

	now := time.Now()
	standard := now.AddDate(0, 0, pin.StandardDeliveryDays)
	express := now.AddDate(0, 0, pin.ExpressDeliveryDays)

	jsonOK(h.render, w, "", map[string]interface{}{
		"pincode":                 pin.Pincode,
		"city":                    pin.City,
		"state":                   pin.State,
		"cod_available":           pin.CodAvailable,
		"standard_delivery_date":  standard.Format(deliveryDateFormat),
		"express_delivery_date":   express.Format(deliveryDateFormat),
		"express_delivery_charge": pin.ExpressDeliveryCharge,
	})
}
