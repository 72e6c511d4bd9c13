package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queueURL := os.Getenv("ORDER_EVENTS_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("ORDER_EVENTS_QUEUE_URL is required")
	}
	namespace := os.Getenv("METRICS_NAMESPACE")
	if namespace == "" {
		namespace = "BakeBliss"
	}

	clients, err := internalaws.NewAWSClients(ctx)
	if err != nil {
		log.Fatalf("init aws clients: %v", err)
	}

	p := NewProcessor(clients.SQS, internalaws.NewMetricsEmitter(clients.CloudWatch, namespace), queueURL)

	log.Printf("worker consuming %s", queueURL)
	if err := p.Run(ctx); err != nil {
		log.Fatalf("worker: %v", err)
	}
	log.Println("worker stopped")
}
