package handlers

import (
	"github.com/manovastra/storefront/app/helpers"
	"github.com/manovastra/storefront/app/models"
	"github.com/shopspring/decimal"
)

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// orderPayload shapes an Order for JSON responses. Dates follow the
// storefront's display format.
func orderPayload(order *models.Order) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		entry := map[string]interface{}{
			"product_id": item.ProductID,
			"color":      item.Color,
			"quantity":   item.Quantity,
			"price":      item.Price,
			"total":      item.Total(),
		}
		if item.Product.ID != "" {
			entry["product_name"] = item.Product.Name
			entry["product_slug"] = item.Product.Slug
		}
		items = append(items, entry)
	}

	payload := map[string]interface{}{
		"order_id":       order.OrderCode,
		"customer_name":  order.CustomerName,
		"customer_email": order.CustomerEmail,
		"customer_phone": order.CustomerPhone,
		"address_line1":  order.AddressLine1,
		"address_line2":  order.AddressLine2,
		"city":           order.City,
		"state":          order.State,
		"pincode":        order.Pincode,

		"status":         order.Status,
		"payment_method": order.PaymentMethod,

		"subtotal":        order.Subtotal,
		"discount":        order.Discount,
		"delivery_charge": order.DeliveryCharge,
		"total_amount":    order.TotalAmount,
		"total_display":   helpers.FormatINR(order.TotalAmount),

		"delivery_type": order.DeliveryType,
		"created_at":    order.CreatedAt,
		"items":         items,
	}
	if order.ExpectedDeliveryDate != nil {
		payload["expected_delivery_date"] = order.ExpectedDeliveryDate.Format("02 Jan, Monday")
	}
	if order.Payment != nil {
		payload["payment_status"] = order.Payment.Status
	}
	return payload
}
