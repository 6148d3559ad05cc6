package http

import (
	"time"

	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/cart"
)

// Error is the JSON error envelope returned on every failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddCartItemRequest adds a product to the customer's cart. A quantity of
// zero adds a watch-list line.
type AddCartItemRequest struct {
	StoreID   string            `json:"store_id"`
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// MergeCartsRequest folds the source customer's cart into the addressed
// customer's cart.
type MergeCartsRequest struct {
	SourceCustomerID string `json:"source_customer_id"`
}

// CheckoutRequest converts the customer's cart into an order. At least one
// address must be given; the missing one is copied from the other.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

// CheckoutResponse returns the identifier of the order shell the conversion
// produced.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
}

// AcknowledgePaymentRequest records a payment reported by the provider.
type AcknowledgePaymentRequest struct {
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	ReceivedAt    time.Time `json:"received_at"`
}

// UpdateStorePricingRequest replaces a store's modifier list and tax rate.
type UpdateStorePricingRequest struct {
	ModifierNames []string `json:"modifier_names"`
	TaxRate       string   `json:"tax_rate"`
}

// CartResponse is the priced cart as shown to the customer.
type CartResponse struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	ExtraRows []ExtraRowResponse `json:"extra_rows"`
	Subtotal  string             `json:"subtotal"`
	Total     string             `json:"total"`
	Currency  string             `json:"currency"`
	Notices   []string           `json:"notices,omitempty"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ID          string             `json:"id"`
	ProductCode string             `json:"product_code"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	IsWatch     bool               `json:"is_watch"`
	UnitPrice   string             `json:"unit_price"`
	LineTotal   string             `json:"line_total"`
	ExtraRows   []ExtraRowResponse `json:"extra_rows,omitempty"`
}

// ExtraRowResponse is one price adjustment contributed by a pricing modifier.
type ExtraRowResponse struct {
	ModifierID string `json:"modifier_id"`
	Label      string `json:"label"`
	Amount     string `json:"amount"`
}

// OrderResponse is the order as shown on a status page.
type OrderResponse struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Status     string `json:"status"`
	StatusName string `json:"status_name"`
	Currency   string `json:"currency"`
	Subtotal   string `json:"subtotal"`
	Total      string `json:"total"`
	AmountPaid string `json:"amount_paid"`
}

func toExtraRowResponses(rows []cart.ExtraRow) []ExtraRowResponse {
	result := make([]ExtraRowResponse, len(rows))
	for i, row := range rows {
		result[i] = ExtraRowResponse{
			ModifierID: row.ModifierID,
			Label:      row.Label,
			Amount:     row.Amount.Amount().String(),
		}
	}
	return result
}

func toCartResponse(response queries.GetCartQueryResponse) CartResponse {
	items := make([]CartItemResponse, len(response.Items))
	for i, item := range response.Items {
		items[i] = CartItemResponse{
			ID:          item.ID.String(),
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			IsWatch:     item.IsWatch,
			UnitPrice:   item.UnitPrice.Amount().String(),
			LineTotal:   item.LineTotal.Amount().String(),
			ExtraRows:   toExtraRowResponses(item.ExtraRows),
		}
	}

	return CartResponse{
		ID:        response.ID.String(),
		Items:     items,
		ExtraRows: toExtraRowResponses(response.ExtraRows),
		Subtotal:  response.Subtotal.Amount().String(),
		Total:     response.Total.Amount().String(),
		Currency:  string(response.Total.Currency()),
		Notices:   response.Notices,
	}
}
