package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/services"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	otpService   *services.OTPService
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.Store
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, otpService *services.OTPService, userRepo repositories.UserRepositoryImpl, sessionStore sessions.Store, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		otpService:   otpService,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type RegisterForm struct {
	Name     string `validate:"required,min=2,max=200"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,min=10,max=15"`
	Password string `validate:"required,min=6"`
}

func (h *AuthHandler) SendLoginOTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		jsonFail(h.render, w, http.StatusOK, "Email is required")
		return
	}
	if err := h.validator.Var(email, "email"); err != nil {
		jsonFail(h.render, w, http.StatusOK, "Please enter a valid email address")
		return
	}

	if err := h.otpService.IssueLoginOTP(r.Context(), email); err != nil {
		if errors.Is(err, services.ErrUnknownAccount) {
			jsonFail(h.render, w, http.StatusOK, "Account not found. Please register first.")
			return
		}
		log.Printf("SendLoginOTP: issue failed for %s: %v", email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to send OTP. Please try again.")
		return
	}

	jsonOK(h.render, w, "OTP sent successfully to your email", nil)
}

func (h *AuthHandler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	code := strings.TrimSpace(r.FormValue("otp"))
	if email == "" || code == "" {
		jsonFail(h.render, w, http.StatusOK, "Email and OTP are required")
		return
	}

	if err := h.otpService.Verify(r.Context(), email, code); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			jsonFail(h.render, w, http.StatusOK, "Invalid OTP")
		case errors.Is(err, services.ErrOTPExpired):
			jsonFail(h.render, w, http.StatusOK, "OTP expired. Please request a new one.")
		default:
			log.Printf("VerifyLoginOTP: verify failed for %s: %v", email, err)
			jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil || user == nil {
		log.Printf("VerifyLoginOTP: account lookup after verify failed for %s: %v", email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if err := h.sessionStore.SetCurrentUser(w, r, sessions.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name}); err != nil {
		log.Printf("VerifyLoginOTP: session save failed for %s: %v", email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to create login session.")
		return
	}

	jsonOK(h.render, w, "Login successful", map[string]interface{}{
		"redirect_url": "/",
	})
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	form := RegisterForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Password: r.FormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		jsonFail(h.render, w, http.StatusOK, "All fields are required")
		return
	}

	if err := h.otpService.IssueRegistrationOTP(r.Context(), form.Email); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			jsonFail(h.render, w, http.StatusOK, "Email already registered")
			return
		}
		log.Printf("RegisterUser: issue failed for %s: %v", form.Email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Failed to send OTP. Please try again.")
		return
	}

	hash := helpers.HashPassword(form.Password)
	if hash == "" {
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	staged := &sessions.StagedRegistration{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		PasswordHash: hash,
	}
	if err := h.sessionStore.SetStagedRegistration(w, r, staged); err != nil {
		log.Printf("RegisterUser: staging failed for %s: %v", form.Email, err)
		jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	jsonOK(h.render, w, "OTP sent to your email. Please verify to complete registration.", nil)
}

func (h *AuthHandler) VerifyRegistrationOTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonFail(h.render, w, http.StatusBadRequest, "Could not read form data")
		return
	}

	code := strings.TrimSpace(r.FormValue("otp"))
	if code == "" {
		jsonFail(h.render, w, http.StatusOK, "OTP is required")
		return
	}

	staged := h.sessionStore.StagedRegistration(r)
	if staged == nil {
		jsonFail(h.render, w, http.StatusOK, "Session expired. Please try again.")
		return
	}

	user, err := h.otpService.CompleteRegistration(r.Context(), staged.Name, staged.Email, staged.Phone, staged.PasswordHash, code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			// Staged data stays in the session so the buyer can retry.
			jsonFail(h.render, w, http.StatusOK, "Invalid OTP")
		case errors.Is(err, services.ErrOTPExpired):
			jsonFail(h.render, w, http.StatusOK, "OTP expired. Please request a new one.")
		default:
			log.Printf("VerifyRegistrationOTP: registration failed for %s: %v", staged.Email, err)
			jsonFail(h.render, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	if err := h.sessionStore.ClearStagedRegistration(w, r); err != nil {
		log.Printf("VerifyRegistrationOTP: failed to clear staged registration for %s: %v", staged.Email, err)
	}
	if err := h.sessionStore.SetCurrentUser(w, r, sessions.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name}); err != nil {
		log.Printf("VerifyRegistrationOTP: session save failed for %s: %v", staged.Email, err)
	}

	jsonOK(h.render, w, "Registration successful", map[string]interface{}{
		"redirect_url": "/",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) CheckLoginStatus(w http.ResponseWriter, r *http.Request) {
	user := h.sessionStore.CurrentUser(r)
	payload := map[string]interface{}{
		"is_logged_in": user != nil,
		"user_name":    "",
	}
	if user != nil {
		payload["user_name"] = user.Name
	}
	_ = h.render.JSON(w, http.StatusOK, payload)
}
