package payments

import (
	"testing"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
)

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		raw         string
		wantPayment models.PaymentStatus
		wantOrder   models.OrderStatus
	}{
		{"settlement", models.PaymentSuccess, models.OrderPaid},
		{"capture", models.PaymentSuccess, models.OrderPaid},
		{"SETTLEMENT", models.PaymentSuccess, models.OrderPaid}, // case-insensitive
		{"pending", models.PaymentPending, models.OrderPending},
		{"expire", models.PaymentExpired, models.OrderExpired},
		{"cancel", models.PaymentFailed, models.OrderCancelled},
		{"deny", models.PaymentFailed, models.OrderCancelled},
		{"refund", models.PaymentRefunded, models.OrderPending},
		{"", models.PaymentPending, models.OrderPending},
		{"some_new_status", models.PaymentPending, models.OrderPending},
	}

	for _, tc := range cases {
		gotPayment, gotOrder := MapTransactionStatus(tc.raw)
		if gotPayment != tc.wantPayment || gotOrder != tc.wantOrder {
			t.Errorf("MapTransactionStatus(%q) = (%s, %s), want (%s, %s)",
				tc.raw, gotPayment, gotOrder, tc.wantPayment, tc.wantOrder)
		}
	}
}
