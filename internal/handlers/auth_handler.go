package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/auth"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/respond"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/validation"
)

const tokenTTL = 24 * time.Hour

// userView strips the password hash from responses.
type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func viewOf(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterAuthRoutes registers registration, login and the current-user
// endpoint.
func RegisterAuthRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/api/auth/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		var existing models.User
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			respond.Error(c, http.StatusBadRequest, "email_taken", "email is already registered")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: hash,
			Role:     models.RoleUser,
		}
		if err := cfg.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		respond.OK(c, http.StatusCreated, "registered", viewOf(&user))
	})

	r.POST("/api/auth/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		var user models.User
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("email = ?", req.Email).First(&user).Error
		if err != nil || !auth.CheckPassword(user.Password, req.Password) {
			// same response for unknown email and wrong password
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "email or password is incorrect")
			return
		}

		token, err := auth.MintToken(cfg.JWTSecret, user.ID, user.Role, tokenTTL)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}

		c.SetCookie(auth.CookieName, token, int(tokenTTL.Seconds()), "/", "", false, true)
		respond.OK(c, http.StatusOK, "logged in", viewOf(&user))
	})

	r.GET("/api/users/me", auth.RequireAuth(cfg.JWTSecret), func(c *gin.Context) {
		claims := auth.FromContext(c)

		var user models.User
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("id = ?", claims.UserID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "user_not_found", "")
			return
		}
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "server_error", "")
			return
		}
		respond.OK(c, http.StatusOK, "OK", viewOf(&user))
	})
}
