package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/manovastra/storefront/app/models"
	"github.com/manovastra/storefront/app/repositories"
	"github.com/manovastra/storefront/app/utils/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	secret  string
	created int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	f.created++
	return fmt.Sprintf("order_test_%d", f.created), nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return signature == SignCallbackPayload(gatewayOrderID, gatewayPaymentID, f.secret)
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func newCheckoutService(db *gorm.DB, gateway PaymentGateway) *CheckoutService {
	return NewCheckoutService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewPincodeRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewPaymentRepository(db),
		gateway,
	)
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Kanjivaram Silk Saree",
		PrimaryColor:  "Royal Red",
		CurrentPrice:  decimal.RequireFromString("1000.00"),
		OriginalPrice: decimal.RequireFromString("1250.00"),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedPin(t *testing.T, db *gorm.DB, code string, days int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Pincode{Pincode: code, City: "New Delhi", State: "Delhi", StandardDeliveryDays: days}).Error)
}

func testIntent(product *models.Product, qty int) *sessions.PurchaseIntent {
	return &sessions.PurchaseIntent{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSlug:   product.Slug,
		Color:         "Royal Red",
		Qty:           qty,
		Price:         product.CurrentPrice,
		OriginalPrice: product.OriginalPrice,
		Discount:      product.OriginalPrice.Sub(product.CurrentPrice),
	}
}

func testCustomer() CustomerDetails {
	return CustomerDetails{
		Name:         "Test Buyer",
		Email:        "buyer@example.com",
		Phone:        "9999999999",
		AddressLine1: "12 MG Road",
		City:         "New Delhi",
		State:        "Delhi",
		Pincode:      "110001",
	}
}

func signedCallback(gatewayOrderID, secret string) PaymentCallback {
	return PaymentCallback{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: "pay_test_1",
		Signature:        SignCallbackPayload(gatewayOrderID, "pay_test_1", secret),
	}
}

func TestIntentAmount(t *testing.T) {
	intent := &sessions.PurchaseIntent{Qty: 2, Price: decimal.RequireFromString("1000.00")}
	require.EqualValues(t, 200000, IntentAmount(intent))

	intent = &sessions.PurchaseIntent{Qty: 1, Price: decimal.RequireFromString("649.50")}
	require.EqualValues(t, 64950, IntentAmount(intent))
}

func TestCreateGatewayOrder(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{secret: "s3cr3t"}
	svc := newCheckoutService(db, gw)
	product := seedProduct(t, db)

	orderID, amount, err := svc.CreateGatewayOrder(context.Background(), testIntent(product, 2))
	require.NoError(t, err)
	require.Equal(t, "order_test_1", orderID)
	require.EqualValues(t, 200000, amount)
}

func TestCreateGatewayOrderNoIntent(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})

	_, _, err := svc.CreateGatewayOrder(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoActiveIntent)
}

func TestFinalizeOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})
	product := seedProduct(t, db)
	seedPin(t, db, "110001", 3)
	ctx := context.Background()

	order, err := svc.FinalizeOrder(ctx, testIntent(product, 2), testCustomer(), signedCallback("order_test_1", "s3cr3t"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(order.OrderCode, "MAN"))
	require.Len(t, order.OrderCode, 13)

	require.Equal(t, models.OrderStatusConfirmed, order.Status)
	require.Equal(t, models.PaymentMethodOnline, order.PaymentMethod)
	require.True(t, order.Subtotal.Equal(decimal.RequireFromString("2500.00")), "subtotal %s", order.Subtotal)
	require.True(t, order.Discount.Equal(decimal.RequireFromString("500.00")), "discount %s", order.Discount)
	require.True(t, order.DeliveryCharge.IsZero())
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("2000.00")), "total %s", order.TotalAmount)
	require.NotNil(t, order.ExpectedDeliveryDate)

	stored, err := repositories.NewOrderRepository(db).FindByCode(ctx, order.OrderCode)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	require.Equal(t, 2, stored.Items[0].Quantity)
	require.Equal(t, "Royal Red", stored.Items[0].Color)
	require.True(t, stored.Items[0].Price.Equal(decimal.RequireFromString("1000.00")))

	require.NotNil(t, stored.Payment)
	require.Equal(t, models.PaymentStatusSuccess, stored.Payment.Status)
	require.Equal(t, "order_test_1", stored.Payment.RazorpayOrderID)
	require.True(t, stored.Payment.Amount.Equal(stored.TotalAmount))
}

func TestFinalizeOrderInvalidSignature(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})
	product := seedProduct(t, db)
	ctx := context.Background()

	cb := signedCallback("order_test_1", "s3cr3t")
	cb.Signature = "deadbeef"

	_, err := svc.FinalizeOrder(ctx, testIntent(product, 2), testCustomer(), cb)
	require.ErrorIs(t, err, ErrSignatureInvalid)

	var orders, payments int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	require.Zero(t, orders)
	require.Zero(t, payments)
}

func TestFinalizeOrderNoIntent(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})

	_, err := svc.FinalizeOrder(context.Background(), nil, testCustomer(), signedCallback("order_test_1", "s3cr3t"))
	require.ErrorIs(t, err, ErrNoActiveIntent)
}

func TestFinalizeOrderReplayRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})
	product := seedProduct(t, db)
	ctx := context.Background()

	cb := signedCallback("order_test_1", "s3cr3t")
	intent := testIntent(product, 1)

	_, err := svc.FinalizeOrder(ctx, intent, testCustomer(), cb)
	require.NoError(t, err)

	_, err = svc.FinalizeOrder(ctx, intent, testCustomer(), cb)
	require.ErrorIs(t, err, ErrNoActiveIntent)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.EqualValues(t, 1, orders)
}

func TestFinalizeOrderUnknownPincodeStillPlacesOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db, &fakeGateway{secret: "s3cr3t"})
	product := seedProduct(t, db)

	customer := testCustomer()
	customer.Pincode = "999999"

	order, err := svc.FinalizeOrder(context.Background(), testIntent(product, 1), customer, signedCallback("order_test_1", "s3cr3t"))
	require.NoError(t, err)
	require.Nil(t, order.ExpectedDeliveryDate)
}
