package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/payments"
)

// Service owns the order lifecycle: intake, payment session initiation, and
// webhook reconciliation. It holds an explicitly constructed DB handle and a
// gateway client; no package-level state.
type Service struct {
	db      *gorm.DB
	snap    payments.SnapAPI
	nowFunc func() time.Time
}

func NewService(db *gorm.DB, snapClient payments.SnapAPI) *Service {
	return &Service{
		db:      db,
		snap:    snapClient,
		nowFunc: time.Now,
	}
}

// LineInput is one cart line as submitted by the client. Price is absent on
// purpose: intake always resolves it from the catalog.
type LineInput struct {
	ProductID string
	Qty       int
}

// CreateInput carries the cart plus optional customer identity.
type CreateInput struct {
	UserID        *string
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Items         []LineInput
}

// CreateResult is the intake outcome: the persisted order and the gateway
// session artifacts for the client to complete payment.
type CreateResult struct {
	Order       *models.Order `json:"order"`
	SnapToken   string        `json:"snapToken"`
	RedirectURL string        `json:"redirectUrl"`
}

// Create validates the cart, snapshots authoritative catalog prices, persists
// Order + Items + a PENDING PaymentTransaction in one transaction, then asks
// the gateway for a Snap session.
//
// A gateway failure after the commit returns a *GatewayError: the order stays
// persisted in PENDING with no token and can be resumed via RefreshSession.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range in.Items {
		if line.Qty < 1 {
			return nil, ErrInvalidQty
		}
	}

	ids := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total int64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		subtotal := p.Price * int64(line.Qty)
		total += subtotal
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       line.Qty,
			Subtotal:  subtotal,
		})
	}

	code := GenerateOrderCode(s.nowFunc())
	order := models.Order{
		OrderCode:     code,
		UserID:        in.UserID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		TotalAmount:   total,
		Currency:      "IDR",
		Status:        models.OrderPending,
		Items:         items,
		Payment: &models.PaymentTransaction{
			Provider:       "MIDTRANS",
			GatewayOrderID: code,
			GrossAmount:    total,
			Currency:       "IDR",
			Status:         models.PaymentPending,
		},
	}

	// Order, items and payment land together or not at all.
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	session, err := payments.RequestSession(s.snap, &order)
	if err != nil {
		return nil, &GatewayError{Code: code, Err: err}
	}

	if err := s.storeSession(ctx, order.Payment.ID, session); err != nil {
		return nil, err
	}
	order.Payment.SnapToken = session.Token
	order.Payment.RedirectURL = session.RedirectURL

	return &CreateResult{
		Order:       &order,
		SnapToken:   session.Token,
		RedirectURL: session.RedirectURL,
	}, nil
}

// GetByCode loads an order with its items and payment.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Payment").
		Where("order_code = ?", code).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", code, err)
	}
	return &order, nil
}

// RefreshSession re-requests a gateway session for an order left PENDING
// without a token (e.g. after a gateway outage during intake).
func (s *Service) RefreshSession(ctx context.Context, code string) (*CreateResult, error) {
	order, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if order.Payment == nil {
		return nil, ErrPaymentNotFound
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotPending
	}

	session, err := payments.RequestSession(s.snap, order)
	if err != nil {
		return nil, &GatewayError{Code: code, Err: err}
	}
	if err := s.storeSession(ctx, order.Payment.ID, session); err != nil {
		return nil, err
	}
	order.Payment.SnapToken = session.Token
	order.Payment.RedirectURL = session.RedirectURL

	return &CreateResult{
		Order:       order,
		SnapToken:   session.Token,
		RedirectURL: session.RedirectURL,
	}, nil
}

func (s *Service) storeSession(ctx context.Context, paymentID string, session *payments.SessionResult) error {
	err := s.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{
			"snap_token":   session.Token,
			"redirect_url": session.RedirectURL,
			"status":       models.PaymentPending,
		}).Error
	if err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// ApplyNotification reconciles a verified gateway callback onto the order and
// its payment. Re-delivery of the same or an older status is accepted as a
// last-write-wins overwrite; there is no sequencing protection against
// out-of-order delivery.
func (s *Service) ApplyNotification(ctx context.Context, n *payments.Notification) (*models.Order, error) {
	order, err := s.GetByCode(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Payment == nil {
		return nil, ErrPaymentNotFound
	}

	paymentStatus, orderStatus := payments.MapTransactionStatus(n.TransactionStatus)

	updates := map[string]any{
		"transaction_id":     n.TransactionID,
		"payment_type":       n.PaymentType,
		"transaction_status": n.TransactionStatus,
		"fraud_status":       n.FraudStatus,
		"status":             paymentStatus,
	}
	if gross, perr := decimal.NewFromString(n.GrossAmount); perr == nil {
		updates["gross_amount"] = gross.IntPart()
	}
	if n.Currency != "" {
		updates["currency"] = n.Currency
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentTransaction{}).
			Where("id = ?", order.Payment.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", orderStatus).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByCode(ctx, n.OrderID)
}
