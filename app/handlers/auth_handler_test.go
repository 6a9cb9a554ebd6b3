package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, app *testApp, email string) {
	t.Helper()
	require.NoError(t, app.db.Create(&models.UserProfile{
		Email:      email,
		Name:       "Test Buyer",
		Phone:      "9999999999",
		Password:   "x",
		IsVerified: true,
	}).Error)
}

func latestCode(t *testing.T, app *testApp, email string) string {
	t.Helper()
	var otp models.UserOTP
	require.NoError(t, app.db.Where("email = ?", email).Order("created_at DESC").First(&otp).Error)
	return otp.Code
}

func TestSendLoginOTPUnknownAccount(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.auth.SendLoginOTP(w, postForm("/send-login-otp", url.Values{"email": {"nobody@example.com"}}))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Account not found. Please register first.", body["message"])
}

func TestSendLoginOTPInvalidEmail(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.auth.SendLoginOTP(w, postForm("/send-login-otp", url.Values{"email": {"not-an-email"}}))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Please enter a valid email address", body["message"])
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	seedAccount(t, app, "buyer@example.com")

	w := httptest.NewRecorder()
	app.auth.SendLoginOTP(w, postForm("/send-login-otp", url.Values{"email": {"buyer@example.com"}}))
	require.True(t, decodeJSON(t, w)["success"].(bool))

	code := latestCode(t, app, "buyer@example.com")

	w2 := httptest.NewRecorder()
	app.auth.VerifyLoginOTP(w2, postForm("/verify-login-otp", url.Values{
		"email": {"buyer@example.com"},
		"otp":   {code},
	}))

	body := decodeJSON(t, w2)
	require.True(t, body["success"].(bool))
	require.Equal(t, "Login successful", body["message"])

	user := app.store.CurrentUser(carryCookies(httptest.NewRequest(http.MethodGet, "/", nil), w2))
	require.NotNil(t, user)
	require.Equal(t, "buyer@example.com", user.Email)
}

func TestVerifyLoginOTPWrongCode(t *testing.T) {
	app := newTestApp(t)
	seedAccount(t, app, "buyer@example.com")

	w := httptest.NewRecorder()
	app.auth.SendLoginOTP(w, postForm("/send-login-otp", url.Values{"email": {"buyer@example.com"}}))

	w2 := httptest.NewRecorder()
	app.auth.VerifyLoginOTP(w2, postForm("/verify-login-otp", url.Values{
		"email": {"buyer@example.com"},
		"otp":   {"000000"},
	}))

	body := decodeJSON(t, w2)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Invalid OTP", body["message"])
}

func TestRegistrationFlow(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":     {"New Buyer"},
		"email":    {"new@example.com"},
		"phone":    {"8888888888"},
		"password": {"secret123"},
	}
	w := httptest.NewRecorder()
	app.auth.RegisterUser(w, postForm("/register-user", form))
	require.True(t, decodeJSON(t, w)["success"].(bool))

	// No profile exists until the code is confirmed.
	var count int64
	require.NoError(t, app.db.Model(&models.UserProfile{}).Count(&count).Error)
	require.Zero(t, count)

	code := latestCode(t, app, "new@example.com")

	r := carryCookies(postForm("/verify-registration-otp", url.Values{"otp": {code}}), w)
	w2 := httptest.NewRecorder()
	app.auth.VerifyRegistrationOTP(w2, r)

	body := decodeJSON(t, w2)
	require.True(t, body["success"].(bool))
	require.Equal(t, "Registration successful", body["message"])

	var user models.UserProfile
	require.NoError(t, app.db.Where("email = ?", "new@example.com").First(&user).Error)
	require.True(t, user.IsVerified)
	require.Equal(t, "New Buyer", user.Name)

	logged := app.store.CurrentUser(carryCookies(httptest.NewRequest(http.MethodGet, "/", nil), w2))
	require.NotNil(t, logged)
	require.Equal(t, "new@example.com", logged.Email)
}

func TestRegisterUserEmailTaken(t *testing.T) {
	app := newTestApp(t)
	seedAccount(t, app, "taken@example.com")

	form := url.Values{
		"name":     {"New Buyer"},
		"email":    {"taken@example.com"},
		"phone":    {"8888888888"},
		"password": {"secret123"},
	}
	w := httptest.NewRecorder()
	app.auth.RegisterUser(w, postForm("/register-user", form))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Email already registered", body["message"])
}

func TestVerifyRegistrationOTPWithoutStagedData(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.auth.VerifyRegistrationOTP(w, postForm("/verify-registration-otp", url.Values{"otp": {"123456"}}))

	body := decodeJSON(t, w)
	require.False(t, body["success"].(bool))
	require.Equal(t, "Session expired. Please try again.", body["message"])
}

func TestCheckLoginStatus(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.auth.CheckLoginStatus(w, httptest.NewRequest(http.MethodGet, "/check-login-status", nil))
	body := decodeJSON(t, w)
	require.False(t, body["is_logged_in"].(bool))

	setW := httptest.NewRecorder()
	require.NoError(t, app.store.SetCurrentUser(setW, httptest.NewRequest(http.MethodGet, "/", nil), sessions.SessionUser{ID: "user-1", Email: "buyer@example.com", Name: "Test Buyer"}))

	w2 := httptest.NewRecorder()
	app.auth.CheckLoginStatus(w2, carryCookies(httptest.NewRequest(http.MethodGet, "/check-login-status", nil), setW))
	body = decodeJSON(t, w2)
	require.True(t, body["is_logged_in"].(bool))
	require.Equal(t, "Test Buyer", body["user_name"])
}
