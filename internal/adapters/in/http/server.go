// Package http exposes the shop use cases over a JSON API. The handlers are a
// thin boundary: they bind requests, build guarded commands and translate
// errors to status codes, nothing more.
package http

import (
	"errors"
	"net/http"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the HTTP handlers for the shop API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler        commands.AddCartItemCommandHandler
	removeCartItemHandler     commands.RemoveCartItemCommandHandler
	mergeCartsHandler         commands.MergeCartsCommandHandler
	checkoutHandler           commands.CheckoutCommandHandler
	acknowledgePaymentHandler commands.AcknowledgePaymentCommandHandler
	updateStorePricingHandler commands.UpdateStorePricingCommandHandler

	// Query handlers
	getCartHandler          queries.GetCartQueryHandler
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	mergeCartsHandler commands.MergeCartsCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	acknowledgePaymentHandler commands.AcknowledgePaymentCommandHandler,
	updateStorePricingHandler commands.UpdateStorePricingCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:        addCartItemHandler,
		removeCartItemHandler:     removeCartItemHandler,
		mergeCartsHandler:         mergeCartsHandler,
		checkoutHandler:           checkoutHandler,
		acknowledgePaymentHandler: acknowledgePaymentHandler,
		updateStorePricingHandler: updateStorePricingHandler,
		getCartHandler:            getCartHandler,
		getOrderByNumberHandler:   getOrderByNumberHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/customers/:customerId/cart", s.GetCart)
	e.POST("/api/v1/customers/:customerId/cart/items", s.AddCartItem)
	e.DELETE("/api/v1/customers/:customerId/cart/items/:itemId", s.RemoveCartItem)
	e.POST("/api/v1/customers/:customerId/cart/merge", s.MergeCarts)
	e.POST("/api/v1/customers/:customerId/checkout", s.Checkout)
	e.POST("/api/v1/orders/:orderId/payments", s.AcknowledgePayment)
	e.GET("/api/v1/orders/:number", s.GetOrderByNumber)
	e.PUT("/api/v1/stores/:storeId/pricing", s.UpdateStorePricing)
}

// AddCartItem handles POST /api/v1/customers/:customerId/cart/items.
// A quantity of zero puts the product on the watch list.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, storeID, productID, req.Quantity, req.Extra)
	if err != nil {
		return badRequest(ctx, "Invalid cart item data: "+err.Error())
	}

	if handleErr := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/customers/:customerId/cart/items/:itemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID)
	if err != nil {
		return badRequest(ctx, "Invalid cart item data: "+err.Error())
	}

	if handleErr := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MergeCarts handles POST /api/v1/customers/:customerId/cart/merge. Called on
// login to fold a visitor's cart into the recognized customer's cart.
func (s *Server) MergeCarts(ctx echo.Context) error {
	targetID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var req MergeCartsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sourceID, err := kernel.UUIDFromString(req.SourceCustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid source customer id")
	}

	cmd, err := commands.NewMergeCartsCommand(sourceID, targetID)
	if err != nil {
		return badRequest(ctx, "Invalid merge data: "+err.Error())
	}

	if handleErr := s.mergeCartsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCart handles GET /api/v1/customers/:customerId/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid cart query: "+err.Error())
	}

	response, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCartResponse(response))
}

// Checkout handles POST /api/v1/customers/:customerId/checkout. The order
// identifier is generated here; retrying clients resubmit the conversion of
// whatever is left in the cart.
func (s *Server) Checkout(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, customerID, req.ShippingAddress, req.BillingAddress)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	if handleErr := s.checkoutHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID.String()})
}

// AcknowledgePayment handles POST /api/v1/orders/:orderId/payments, the
// webhook a payment provider calls when funds arrive.
func (s *Server) AcknowledgePayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AcknowledgePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	rawAmount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount")
	}
	amount, err := kernel.NewMoney(rawAmount, kernel.Currency(req.Currency))
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	cmd, err := commands.NewAcknowledgePaymentCommand(orderID, amount, req.TransactionID, req.Method, receivedAt)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if handleErr := s.acknowledgePaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateStorePricing handles PUT /api/v1/stores/:storeId/pricing. Changing a
// store's pricing configuration drops its cached pipeline.
func (s *Server) UpdateStorePricing(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeId"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	var req UpdateStorePricingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	taxRate, err := decimal.NewFromString(req.TaxRate)
	if err != nil {
		return badRequest(ctx, "Invalid tax rate")
	}

	cmd, err := commands.NewUpdateStorePricingCommand(storeID, req.ModifierNames, taxRate)
	if err != nil {
		return badRequest(ctx, "Invalid pricing data: "+err.Error())
	}

	if handleErr := s.updateStorePricingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return businessError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderByNumber handles GET /api/v1/orders/:number where number is the
// printable form, e.g. 2026-00042.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, "Invalid order number: "+err.Error())
	}

	response, err := s.getOrderByNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:         response.ID.String(),
		Number:     response.Number,
		Status:     response.Status,
		StatusName: response.StatusName,
		Currency:   response.Currency,
		Subtotal:   response.Subtotal.String(),
		Total:      response.Total.String(),
		AmountPaid: response.AmountPaid.String(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// businessError maps use case failures to status codes: rejected values to
// 400, missing aggregates to 404, rejected business operations to 409,
// everything else to 500.
func businessError(ctx echo.Context, err error) error {
	var notAvailable *product.ProductNotAvailableError

	switch {
	case errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrCartIsEmpty), errors.As(err, &notAvailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}
