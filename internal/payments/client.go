package payments

import (
	"fmt"
	"net/http"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
)

// SnapAPI is the slice of the Midtrans Snap client we use, kept small so
// tests can substitute a mock.
type SnapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// SessionResult is what session initiation hands back to callers. Token and
// RedirectURL are defensively coerced: absent response fields become empty
// strings rather than failing the order.
type SessionResult struct {
	Token       string
	RedirectURL string
}

// NewSnapClient builds a real Snap client with an explicit timeout on the
// outbound HTTP call so a slow gateway cannot hold a request indefinitely.
func NewSnapClient(serverKey string, production bool, timeout time.Duration) SnapAPI {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	c := snap.Client{}
	c.New(serverKey, env)
	c.HttpClient = &midtrans.HttpClientImplementation{
		HttpClient: &http.Client{Timeout: timeout},
	}
	return &c
}

// BuildSnapRequest maps a persisted order onto the gateway transaction
// request. Customer contact fields fall back to placeholder values when the
// order was placed anonymously.
func BuildSnapRequest(order *models.Order) *snap.Request {
	items := make([]midtrans.ItemDetails, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ProductID,
			Name:  it.Name,
			Price: it.Price,
			Qty:   int32(it.Qty),
		})
	}

	name := "Customer"
	if order.CustomerName != nil && *order.CustomerName != "" {
		name = *order.CustomerName
	}
	email := "customer@example.com"
	if order.CustomerEmail != nil && *order.CustomerEmail != "" {
		email = *order.CustomerEmail
	}
	phone := ""
	if order.CustomerPhone != nil {
		phone = *order.CustomerPhone
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: order.TotalAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
			Phone: phone,
		},
		Items: &items,
	}
}

// RequestSession asks the gateway for a Snap token for the given order.
func RequestSession(client SnapAPI, order *models.Order) (*SessionResult, error) {
	resp, mErr := client.CreateTransaction(BuildSnapRequest(order))
	if mErr != nil {
		return nil, fmt.Errorf("snap create transaction: %w", mErr)
	}
	if resp == nil {
		return &SessionResult{}, nil
	}
	return &SessionResult{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}
