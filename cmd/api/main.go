package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/config"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/handlers"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/models"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/orders"
	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/payments"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	clients, err := internalaws.NewAWSClients(ctx)
	if err != nil {
		log.Fatalf("init aws clients: %v", err)
	}

	snapClient := payments.NewSnapClient(cfg.MidtransServerKey, cfg.MidtransProduction, cfg.GatewayTimeout)
	orderService := orders.NewService(db, snapClient)

	handlerCfg := handlers.HandlerConfig{
		DB:                db,
		Orders:            orderService,
		Uploader:          internalaws.NewUploader(clients.S3, cfg.S3Bucket, cfg.S3PublicBaseURL),
		Publisher:         internalaws.NewPublisher(clients.SQS, cfg.OrderEventsQueue),
		JWTSecret:         cfg.JWTSecret,
		MidtransServerKey: cfg.MidtransServerKey,
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: setupRouter(handlerCfg),
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
