package payments

import (
	"strings"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
)

// MapTransactionStatus normalizes a raw gateway transaction status into the
// internal payment and order statuses. Matching is case-insensitive and any
// unrecognized value deliberately falls back to PENDING/PENDING so a new
// gateway vocabulary never flips an order into a terminal state by accident.
//
// Note the refund row: the gateway reports REFUNDED for the payment but the
// order mapping has no refund entry, so the order resolves to PENDING.
func MapTransactionStatus(raw string) (models.PaymentStatus, models.OrderStatus) {
	switch strings.ToLower(raw) {
	case "settlement", "capture":
		return models.PaymentSuccess, models.OrderPaid
	case "pending":
		return models.PaymentPending, models.OrderPending
	case "expire":
		return models.PaymentExpired, models.OrderExpired
	case "cancel", "deny":
		return models.PaymentFailed, models.OrderCancelled
	case "refund":
		return models.PaymentRefunded, models.OrderPending
	default:
		return models.PaymentPending, models.OrderPending
	}
}
