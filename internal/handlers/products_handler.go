package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/auth"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/respond"
)

// RegisterProductRoutes registers catalog CRUD. Create and update accept
// multipart form data with an optional image file uploaded to object storage.
func RegisterProductRoutes(r *gin.Engine, cfg HandlerConfig) {
	admin := r.Group("/api", auth.RequireAuth(cfg.JWTSecret), auth.RoleGuard(models.RoleAdmin))

	admin.POST("/products", func(c *gin.Context) {
		ctx := c.Request.Context()

		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			respond.Error(c, http.StatusBadRequest, "missing_fields", "name and price are required")
			return
		}
		price := cast.ToInt64(priceStr)
		if price <= 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_price", "price must be a positive number")
			return
		}

		imageURL, err := uploadImageIfPresent(c, cfg)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "image_upload_failed", "")
			return
		}

		product := models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			ImageURL:    imageURL,
		}
		if err := cfg.DB.WithContext(ctx).Create(&product).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusCreated, "product created", product)
	})

	r.GET("/api/products", func(c *gin.Context) {
		var products []models.Product
		err := cfg.DB.WithContext(c.Request.Context()).
			Order("created_at DESC").Find(&products).Error
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "products fetched", products)
	})

	r.GET("/api/products/:id", func(c *gin.Context) {
		var product models.Product
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("id = ?", c.Param("id")).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "product_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "product fetched", product)
	})

	admin.PUT("/products/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		var existing models.Product
		err := cfg.DB.WithContext(ctx).
			Where("id = ?", c.Param("id")).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "product_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		if name := c.PostForm("name"); name != "" {
			existing.Name = name
		}
		if desc := c.PostForm("description"); desc != "" {
			existing.Description = desc
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			if price := cast.ToInt64(priceStr); price > 0 {
				existing.Price = price
			}
		}

		oldImage := existing.ImageURL
		imageURL, err := uploadImageIfPresent(c, cfg)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "image_upload_failed", "")
			return
		}
		if imageURL != "" {
			existing.ImageURL = imageURL
		}

		if err := cfg.DB.WithContext(ctx).Save(&existing).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		if imageURL != "" && oldImage != "" && cfg.Uploader != nil {
			if err := cfg.Uploader.Delete(ctx, oldImage); err != nil {
				log.Printf("delete replaced image: %v", err)
			}
		}
		respond.OK(c, http.StatusOK, "product updated", existing)
	})

	admin.DELETE("/products/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		var existing models.Product
		err := cfg.DB.WithContext(ctx).
			Where("id = ?", c.Param("id")).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "product_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		if err := cfg.DB.WithContext(ctx).Delete(&existing).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		if existing.ImageURL != "" && cfg.Uploader != nil {
			if err := cfg.Uploader.Delete(ctx, existing.ImageURL); err != nil {
				log.Printf("delete product image: %v", err)
			}
		}
		respond.OK(c, http.StatusOK, "product deleted", nil)
	})
}

// uploadImageIfPresent stores the optional "image" form file and returns its
// public URL, or "" when the request carries no file.
func uploadImageIfPresent(c *gin.Context, cfg HandlerConfig) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	if cfg.Uploader == nil {
		return "", nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	return cfg.Uploader.Upload(c.Request.Context(), fileHeader.Filename, contentType, f)
}
