package handlers

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/orders"
)

const testServerKey = "test-server-key"

type mockSnap struct {
	resp *snap.Response
	err  *midtrans.Error
}

func (m *mockSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

// newTestRouter builds a full router over a fresh sqlite DB and a canned
// gateway.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gateway := &mockSnap{resp: &snap.Response{
		Token:       "snap-token-123",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-123",
	}}

	cfg := HandlerConfig{
		DB:                db,
		Orders:            orders.NewService(db, gateway),
		Publisher:         internalaws.NewPublisher(nil, ""), // no-op
		JWTSecret:         "test-jwt-secret",
		MidtransServerKey: testServerKey,
	}

	r := gin.New()
	RegisterRoutes(r, cfg)
	return r, db
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, price int64) {
	t.Helper()
	if err := db.Create(&models.Product{ID: id, Name: name, Price: price}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
}
