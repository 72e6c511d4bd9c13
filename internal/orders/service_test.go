package orders

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/payments"
)

// mockSnap records the last request and returns a canned response or error.
type mockSnap struct {
	lastReq *snap.Request
	resp    *snap.Response
	err     *midtrans.Error
	calls   int
}

func (m *mockSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	m.lastReq = req
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, price int64) {
	t.Helper()
	p := models.Product{ID: id, Name: name, Price: price}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func okSnap() *mockSnap {
	return &mockSnap{resp: &snap.Response{
		Token:       "snap-token-123",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-123",
	}}
}

func TestCreate_ComputesTotalFromCatalog(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	gateway := okSnap()
	svc := NewService(db, gateway)

	result, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Order.TotalAmount != 100000 {
		t.Errorf("total = %d, want 100000", result.Order.TotalAmount)
	}
	if result.Order.Status != models.OrderPending {
		t.Errorf("order status = %s, want PENDING", result.Order.Status)
	}
	if result.Order.Payment.Status != models.PaymentPending {
		t.Errorf("payment status = %s, want PENDING", result.Order.Payment.Status)
	}
	if result.SnapToken == "" {
		t.Error("expected a non-empty snap token")
	}
	if len(result.Order.Items) != 1 || result.Order.Items[0].Subtotal != 100000 {
		t.Errorf("unexpected items snapshot: %+v", result.Order.Items)
	}

	// the gateway saw the order code and the server-side total
	if gateway.lastReq.TransactionDetails.OrderID != result.Order.OrderCode {
		t.Errorf("gateway order id = %s, want %s",
			gateway.lastReq.TransactionDetails.OrderID, result.Order.OrderCode)
	}
	if gateway.lastReq.TransactionDetails.GrossAmt != 100000 {
		t.Errorf("gateway gross = %d, want 100000", gateway.lastReq.TransactionDetails.GrossAmt)
	}

	// token persisted onto the payment row
	var stored models.PaymentTransaction
	if err := db.Where("order_id = ?", result.Order.ID).First(&stored).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if stored.SnapToken != "snap-token-123" {
		t.Errorf("stored token = %q, want snap-token-123", stored.SnapToken)
	}
}

func TestCreate_SnapshotImmuneToLaterPriceEdits(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	result, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// catalog edit after the fact
	if err := db.Model(&models.Product{}).Where("id = ?", "P1").
		Updates(map[string]any{"price": 99999, "name": "Renamed"}).Error; err != nil {
		t.Fatalf("update product: %v", err)
	}

	order, err := svc.GetByCode(context.Background(), result.Order.OrderCode)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Items[0].Price != 50000 || order.Items[0].Name != "Brownies" {
		t.Errorf("snapshot mutated: %+v", order.Items[0])
	}
}

func TestCreate_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, okSnap())

	_, err := svc.Create(context.Background(), CreateInput{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	assertNoOrders(t, db)
}

func TestCreate_NonPositiveQty(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	_, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 0}},
	})
	if !errors.Is(err, ErrInvalidQty) {
		t.Fatalf("err = %v, want ErrInvalidQty", err)
	}
	assertNoOrders(t, db)
}

func TestCreate_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	_, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 1}, {ProductID: "NOPE", Qty: 1}},
	})

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ProductNotFoundError", err)
	}
	if notFound.ProductID != "NOPE" {
		t.Errorf("offending id = %s, want NOPE", notFound.ProductID)
	}
	// atomicity: nothing persisted
	assertNoOrders(t, db)
}

func TestCreate_GatewayFailureLeavesOrderResumable(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	gateway := &mockSnap{err: &midtrans.Error{Message: "midtrans is down", StatusCode: 500}}
	svc := NewService(db, gateway)

	_, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 2}},
	})

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("err = %v, want GatewayError", err)
	}

	// order is durable, PENDING, and without a token
	order, err := svc.GetByCode(context.Background(), gwErr.Code)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Status != models.OrderPending || order.Payment.SnapToken != "" {
		t.Errorf("order = %s token = %q, want PENDING with empty token",
			order.Status, order.Payment.SnapToken)
	}

	// a later session retry resumes the same order
	svc.snap = okSnap()
	result, err := svc.RefreshSession(context.Background(), gwErr.Code)
	if err != nil {
		t.Fatalf("refresh session: %v", err)
	}
	if result.SnapToken != "snap-token-123" {
		t.Errorf("token = %q, want snap-token-123", result.SnapToken)
	}
}

func TestRefreshSession_RejectsSettledOrder(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	result, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", result.Order.ID).
		Update("status", models.OrderPaid).Error; err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	_, err = svc.RefreshSession(context.Background(), result.Order.OrderCode)
	if !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("err = %v, want ErrOrderNotPending", err)
	}
}

func settlementFor(order *models.Order) *payments.Notification {
	return &payments.Notification{
		OrderID:           order.OrderCode,
		TransactionID:     "mt-txn-1",
		PaymentType:       "qris",
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
		GrossAmount:       "100000.00",
		Currency:          "IDR",
		StatusCode:        "200",
	}
}

func TestApplyNotification_Settlement(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	created, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	order, err := svc.ApplyNotification(context.Background(), settlementFor(created.Order))
	if err != nil {
		t.Fatalf("apply notification: %v", err)
	}

	if order.Status != models.OrderPaid {
		t.Errorf("order status = %s, want PAID", order.Status)
	}
	if order.Payment.Status != models.PaymentSuccess {
		t.Errorf("payment status = %s, want SUCCESS", order.Payment.Status)
	}
	if order.Payment.TransactionID != "mt-txn-1" || order.Payment.PaymentType != "qris" {
		t.Errorf("gateway fields not written: %+v", order.Payment)
	}
	if order.Payment.GrossAmount != 100000 {
		t.Errorf("gross = %d, want 100000", order.Payment.GrossAmount)
	}
	if order.Payment.TransactionStatus != "settlement" || order.Payment.FraudStatus != "accept" {
		t.Errorf("raw statuses not written: %+v", order.Payment)
	}
}

func TestApplyNotification_RedeliveryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "P1", "Brownies", 50000)
	svc := NewService(db, okSnap())

	created, err := svc.Create(context.Background(), CreateInput{
		Items: []LineInput{{ProductID: "P1", Qty: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n := settlementFor(created.Order)
	first, err := svc.ApplyNotification(context.Background(), n)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	second, err := svc.ApplyNotification(context.Background(), n)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if first.Status != second.Status || first.Payment.Status != second.Payment.Status {
		t.Errorf("redelivery changed state: first (%s,%s) second (%s,%s)",
			first.Status, first.Payment.Status, second.Status, second.Payment.Status)
	}
	if second.Status != models.OrderPaid || second.Payment.Status != models.PaymentSuccess {
		t.Errorf("final state = (%s,%s), want (PAID,SUCCESS)", second.Status, second.Payment.Status)
	}
}

func TestApplyNotification_UnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, okSnap())

	_, err := svc.ApplyNotification(context.Background(), &payments.Notification{
		OrderID:           "BB-20260830-ZZZZ",
		TransactionStatus: "settlement",
		GrossAmount:       "100000.00",
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func assertNoOrders(t *testing.T, db *gorm.DB) {
	t.Helper()
	var orderCount, itemCount, paymentCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	db.Model(&models.PaymentTransaction{}).Count(&paymentCount)
	if orderCount != 0 || itemCount != 0 || paymentCount != 0 {
		t.Fatalf("expected no rows, got orders=%d items=%d payments=%d",
			orderCount, itemCount, paymentCount)
	}
}
