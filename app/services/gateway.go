package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway is the provider-side half of a checkout: creating a
// pending charge and authenticating its redirect callback.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
}

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayGateway(client *razorpay.Client, keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    client,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder registers a pending charge with Razorpay. amount is in the
// smallest currency unit (paise for INR).
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"payment_capture": 1,
	}
	if receipt != "" {
		data["receipt"] = receipt
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		log.Printf("RazorpayGateway: order create failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		log.Printf("RazorpayGateway: order create returned no id: %+v", body)
		return "", ErrGatewayUnavailable
	}
	return orderID, nil
}

// VerifySignature recomputes the callback signature as
// HMAC-SHA256("{order_id}|{payment_id}") keyed by the gateway secret and
// compares it in constant time.
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := SignCallbackPayload(gatewayOrderID, gatewayPaymentID, g.keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func SignCallbackPayload(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
