package services

import "errors"

// Failure taxonomy surfaced to handlers. All map to a structured
// success/failure response; none are fatal process errors.
var (
	ErrUnknownAccount     = errors.New("no account registered for this email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCode        = errors.New("invalid otp code")
	ErrOTPExpired         = errors.New("otp expired")
	ErrNoActiveIntent     = errors.New("no active purchase intent")
	ErrSignatureInvalid   = errors.New("invalid payment signature")
	ErrSessionExpired     = errors.New("session expired")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
