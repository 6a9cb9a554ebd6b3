package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/manovastra/storefront/app/models"
	"github.com/stretchr/testify/require"
)

func TestCheckPincodeServiceable(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.Create(&models.Pincode{
		Pincode:              "110001",
		City:                 "New Delhi",
		State:                "Delhi",
		StandardDeliveryDays: 3,
		ExpressDeliveryDays:  1,
	}).Error)

	w := httptest.NewRecorder()
	app.pincode.CheckPincode(w, postForm("/check-pincode", url.Values{"pincode": {"110001"}}))

	body := decodeJSON(t, w)
	require.True(t, body["success"].(bool))
	require.Equal(t, "New Delhi", body["city"])
	require.Equal(t, "Delhi", body["state"])
	require.NotEmpty(t, body["standard_delivery_date"])
	require.NotEmpty(t, body["express_delivery_date"])
}

func TestCheckPincodeNotServiceable(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.pincode.CheckPincode(w, postForm("/check-pincode", url.Values{"pincode": {"999999"}}))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Sorry, we do not deliver to this pincode yet", body["message"])
}

func TestCheckPincodeInvalidFormat(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.pincode.CheckPincode(w, postForm("/check-pincode", url.Values{"pincode": {"1100"}}))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Please enter a valid 6-digit pincode", body["message"])
}
