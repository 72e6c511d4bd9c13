package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/orders"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/respond"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/validation"
)

// RegisterOrderRoutes registers order intake, lookup and the payment-session
// retry endpoint.
func RegisterOrderRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/api/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		lines := make([]orders.LineInput, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, orders.LineInput{ProductID: it.ProductID, Qty: it.Qty})
		}

		result, err := cfg.Orders.Create(ctx, orders.CreateInput{
			UserID:        req.UserID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Items:         lines,
		})
		if err != nil {
			writeOrderError(c, err)
			return
		}

		// best-effort event; the order is already durable
		if err := cfg.Publisher.PublishOrderEvent(ctx, internalaws.OrderEvent{
			Type:        internalaws.EventOrderCreated,
			OrderCode:   result.Order.OrderCode,
			OrderStatus: string(result.Order.Status),
			Amount:      result.Order.TotalAmount,
			OccurredAt:  time.Now().UTC(),
		}); err != nil {
			log.Printf("publish order.created for %s: %v", result.Order.OrderCode, err)
		}

		respond.OK(c, http.StatusCreated, "order created", result)
	})

	r.GET("/api/orders/:orderCode", func(c *gin.Context) {
		order, err := cfg.Orders.GetByCode(c.Request.Context(), c.Param("orderCode"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		respond.OK(c, http.StatusOK, "OK", order)
	})

	// Re-request a gateway session for a PENDING order whose intake-time
	// session call failed.
	r.POST("/api/orders/:orderCode/payment-session", func(c *gin.Context) {
		result, err := cfg.Orders.RefreshSession(c.Request.Context(), c.Param("orderCode"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		respond.OK(c, http.StatusOK, "payment session refreshed", result)
	})
}

// writeOrderError maps order service errors onto the HTTP taxonomy.
func writeOrderError(c *gin.Context, err error) {
	var notFound *orders.ProductNotFoundError
	var gateway *orders.GatewayError

	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		respond.Error(c, http.StatusBadRequest, "empty_cart", "items must not be empty")
	case errors.Is(err, orders.ErrInvalidQty):
		respond.Error(c, http.StatusBadRequest, "invalid_qty", "qty must be at least 1")
	case errors.As(err, &notFound):
		respond.Error(c, http.StatusNotFound, "product_not_found", notFound.Error())
	case errors.Is(err, orders.ErrOrderNotFound):
		respond.Error(c, http.StatusNotFound, "order_not_found", "")
	case errors.Is(err, orders.ErrPaymentNotFound):
		respond.Error(c, http.StatusNotFound, "payment_not_found", "")
	case errors.Is(err, orders.ErrOrderNotPending):
		respond.Error(c, http.StatusConflict, "order_not_pending", "order has already been settled")
	case errors.As(err, &gateway):
		log.Printf("gateway error: %v", err)
		respond.Error(c, http.StatusBadGateway, "payment_gateway_error",
			"order "+gateway.Code+" is saved; retry the payment session")
	default:
		log.Printf("order handler error: %v", err)
		respond.Error(c, http.StatusInternalServerError, "server_error", "")
	}
}
