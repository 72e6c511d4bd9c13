package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/orders"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/payments"
)

// RegisterWebhookRoutes registers the gateway notification endpoint. The
// gateway requires a literal "OK" body on success, so this handler does not
// use the JSON envelope.
func RegisterWebhookRoutes(r *gin.Engine, cfg HandlerConfig) {
	r.POST("/api/midtrans/notification", func(c *gin.Context) {
		ctx := c.Request.Context()

		var n payments.Notification
		if err := c.ShouldBindJSON(&n); err != nil {
			c.String(http.StatusBadRequest, "Invalid notification payload")
			return
		}

		if !payments.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, cfg.MidtransServerKey, n.SignatureKey) {
			c.String(http.StatusUnauthorized, "Invalid signature")
			return
		}

		order, err := cfg.Orders.ApplyNotification(ctx, &n)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrOrderNotFound), errors.Is(err, orders.ErrPaymentNotFound):
				c.String(http.StatusNotFound, "Order/payment not found")
			default:
				log.Printf("webhook reconciliation for %s: %v", n.OrderID, err)
				c.String(http.StatusInternalServerError, "Server error")
			}
			return
		}

		if err := cfg.Publisher.PublishOrderEvent(ctx, internalaws.OrderEvent{
			Type:          internalaws.EventPaymentUpdated,
			OrderCode:     order.OrderCode,
			OrderStatus:   string(order.Status),
			PaymentStatus: string(order.Payment.Status),
			Amount:        order.TotalAmount,
			OccurredAt:    time.Now().UTC(),
		}); err != nil {
			log.Printf("publish payment.updated for %s: %v", order.OrderCode, err)
		}

		// the gateway retries unless it sees 200 OK
		c.String(http.StatusOK, "OK")
	})
}
