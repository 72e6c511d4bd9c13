package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/orders"
)

// HandlerConfig groups dependencies for all route groups. Everything is
// constructed in main and passed down; handlers keep no globals.
type HandlerConfig struct {
	DB                *gorm.DB
	Orders            *orders.Service
	Uploader          *internalaws.Uploader
	Publisher         *internalaws.Publisher
	JWTSecret         string
	MidtransServerKey string
}

// RegisterRoutes wires every route group under /api.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	RegisterAuthRoutes(r, cfg)
	RegisterProductRoutes(r, cfg)
	RegisterReviewRoutes(r, cfg)
	RegisterOrderRoutes(r, cfg)
	RegisterWebhookRoutes(r, cfg)
}
