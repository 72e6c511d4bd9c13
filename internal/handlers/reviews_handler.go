package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/auth"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/respond"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/validation"
)

// RegisterReviewRoutes registers review creation and lookups.
func RegisterReviewRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/api/reviews", auth.RequireAuth(cfg.JWTSecret), func(c *gin.Context) {
		ctx := c.Request.Context()
		claims := auth.FromContext(c)

		var req validation.CreateReviewRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		var product models.Product
		err := cfg.DB.WithContext(ctx).
			Select("id").Where("id = ?", req.ProductID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "product_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		review := models.Review{
			ProductID: req.ProductID,
			UserID:    claims.UserID,
			Message:   req.Message,
			Rating:    req.Rating,
		}
		if err := cfg.DB.WithContext(ctx).Create(&review).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		if err := cfg.DB.WithContext(ctx).
			Preload("User").Preload("Product").
			First(&review, "id = ?", review.ID).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusCreated, "review created", review)
	})

	r.GET("/api/products/:id/reviews", func(c *gin.Context) {
		var reviews []models.Review
		err := cfg.DB.WithContext(c.Request.Context()).
			Preload("User").
			Where("product_id = ?", c.Param("id")).
			Order("created_at DESC").
			Find(&reviews).Error
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "OK", reviews)
	})

	r.GET("/api/reviews/:id", func(c *gin.Context) {
		var review models.Review
		err := cfg.DB.WithContext(c.Request.Context()).
			Preload("User").Preload("Product").
			Where("id = ?", c.Param("id")).First(&review).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "review_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "OK", review)
	})

	// Recent reviews for the home page. ?limit= caps the result, default 10.
	r.GET("/api/reviews", func(c *gin.Context) {
		limit := cast.ToInt(c.Query("limit"))
		if limit <= 0 || limit > 50 {
			limit = 10
		}
		var reviews []models.Review
		err := cfg.DB.WithContext(c.Request.Context()).
			Preload("User").Preload("Product").
			Order("created_at DESC").
			Limit(limit).
			Find(&reviews).Error
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "OK", reviews)
	})
}
