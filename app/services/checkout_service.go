package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService turns a session-staged purchase intent into a persisted
// Order. The flow spans two invocations: CreateGatewayOrder registers a
// pending charge with the gateway, FinalizeOrder runs after the buyer
// returns from the payment page with a signed callback.
type CheckoutService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepositoryImpl
	pincodeRepo   repositories.PincodeRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	paymentRepo   repositories.PaymentRepository
	gateway       PaymentGateway
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	pincodeRepo repositories.PincodeRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	paymentRepo repositories.PaymentRepository,
	gateway PaymentGateway,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		productRepo:   productRepo,
		pincodeRepo:   pincodeRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		gateway:       gateway,
	}
}

// CustomerDetails is the checkout form input snapshotted onto the Order.
type CustomerDetails struct {
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
}

// PaymentCallback carries the gateway's redirect-leg fields.
type PaymentCallback struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// IntentAmount is the charge for a staged intent in the smallest currency
// unit (paise): snapshotted unit price x quantity x 100.
func IntentAmount(intent *sessions.PurchaseIntent) int64 {
	qty := decimal.NewFromInt(int64(intent.Qty))
	return intent.Price.Mul(qty).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateGatewayOrder registers a pending charge for the staged intent and
// returns the provider-issued order id the caller must remember in
// session state for the second leg.
func (s *CheckoutService) CreateGatewayOrder(ctx context.Context, intent *sessions.PurchaseIntent) (string, int64, error) {
	if intent == nil {
		return "", 0, ErrNoActiveIntent
	}

	amount := IntentAmount(intent)
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, amount, "INR", "")
	if err != nil {
		return "", 0, err
	}

	log.Printf("CheckoutService: gateway order %s created for product %s (amount %d)", gatewayOrderID, intent.ProductID, amount)
	return gatewayOrderID, amount, nil
}

// FinalizeOrder authenticates the gateway callback and, only then,
// persists Order + OrderItem + Payment atomically. An invalid signature
// or a missing intent persists nothing. A replayed callback is rejected
// inside the transaction by the unique gateway-order index on payments.
func (s *CheckoutService) FinalizeOrder(ctx context.Context, intent *sessions.PurchaseIntent, customer CustomerDetails, cb PaymentCallback) (*models.Order, error) {
	if !s.gateway.VerifySignature(cb.GatewayOrderID, cb.GatewayPaymentID, cb.Signature) {
		return nil, ErrSignatureInvalid
	}

	if intent == nil {
		return nil, ErrNoActiveIntent
	}

	product, err := s.productRepo.GetByID(ctx, intent.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", intent.ProductID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s no longer available", intent.ProductID)
	}

	qty := decimal.NewFromInt(int64(intent.Qty))
	subtotal := intent.OriginalPrice.Mul(qty)
	discount := intent.Discount.Mul(qty)
	deliveryCharge := decimal.Zero
	total := subtotal.Sub(discount).Add(deliveryCharge)

	deliveryType := models.DeliveryTypeStandard
	var expectedDelivery *time.Time
	pin, err := s.pincodeRepo.FindServiceable(ctx, customer.Pincode)
	if err != nil {
		return nil, fmt.Errorf("failed to check pincode %s: %w", customer.Pincode, err)
	}
	if pin != nil {
		d := time.Now().AddDate(0, 0, pin.StandardDeliveryDays)
		expectedDelivery = &d
	}

	order := &models.Order{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,

		AddressLine1: customer.AddressLine1,
		AddressLine2: customer.AddressLine2,
		City:         customer.City,
		State:        customer.State,
		Pincode:      customer.Pincode,

		Status:        models.OrderStatusConfirmed,
		PaymentMethod: models.PaymentMethodOnline,

		Subtotal:       subtotal,
		Discount:       discount,
		DeliveryCharge: deliveryCharge,
		TotalAmount:    total,

		DeliveryType:         deliveryType,
		ExpectedDeliveryDate: expectedDelivery,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.paymentRepo.ExistsByGatewayOrderID(ctx, tx, cb.GatewayOrderID)
		if err != nil {
			return fmt.Errorf("failed to check gateway order %s: %w", cb.GatewayOrderID, err)
		}
		if exists {
			return ErrNoActiveIntent
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Color:     intent.Color,
			Quantity:  intent.Qty,
			Price:     intent.Price,
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, []models.OrderItem{item}); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}

		payment := &models.Payment{
			OrderID:           order.ID,
			RazorpayOrderID:   cb.GatewayOrderID,
			RazorpayPaymentID: cb.GatewayPaymentID,
			RazorpaySignature: cb.Signature,
			Amount:            total,
			Status:            models.PaymentStatusSuccess,
			PaymentMethod:     "razorpay",
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to create payment record: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService: order %s finalized for gateway order %s", order.OrderCode, cb.GatewayOrderID)
	return order, nil
}

func (s *CheckoutService) GatewayKeyID() string {
	return s.gateway.KeyID()
}
