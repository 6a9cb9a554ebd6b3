package handlers

import (
	"net/http"

	"github.com/unrolled/render"
)

// The storefront speaks a uniform JSON envelope: {"success": bool,
// "message": string, ...extras}. Domain failures ride a 200 like the
// reference frontend expects; only transport-level problems use 4xx/5xx.
func jsonOK(rnd *render.Render, w http.ResponseWriter, message string, extras map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for k, v := range extras {
		payload[k] = v
	}
	_ = rnd.JSON(w, http.StatusOK, payload)
}

func jsonFail(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
