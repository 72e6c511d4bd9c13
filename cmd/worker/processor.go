package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	internalaws "github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/aws"
)

// Processor drains the order-events queue and turns events into CloudWatch
// metrics. Metric emission is the only side effect; a failed emit leaves the
// message on the queue for redelivery.
type Processor struct {
	sqsClient internalaws.SQSAPI
	metrics   *internalaws.MetricsEmitter
	queueURL  string
}

func NewProcessor(sqsClient internalaws.SQSAPI, metrics *internalaws.MetricsEmitter, queueURL string) *Processor {
	return &Processor{
		sqsClient: sqsClient,
		metrics:   metrics,
		queueURL:  queueURL,
	}
}

// Run long-polls until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		out, err := p.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &p.queueURL,
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("receive messages: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, msg := range out.Messages {
			if err := p.processMessage(ctx, msg); err != nil {
				log.Printf("process message: %v", err)
				continue // leave on queue for redelivery
			}
			if _, err := p.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      &p.queueURL,
				ReceiptHandle: msg.ReceiptHandle,
			}); err != nil {
				log.Printf("delete message: %v", err)
			}
		}
	}
}

func (p *Processor) processMessage(ctx context.Context, msg sqstypes.Message) error {
	var ev internalaws.OrderEvent
	if err := json.Unmarshal([]byte(sdkaws.ToString(msg.Body)), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] event=%s order=%s order_status=%s payment_status=%s",
		ev.Type, ev.OrderCode, ev.OrderStatus, ev.PaymentStatus)

	switch ev.Type {
	case internalaws.EventOrderCreated:
		return p.metrics.Count(ctx, "OrdersCreated", nil)
	case internalaws.EventPaymentUpdated:
		return p.metrics.Count(ctx, "PaymentNotifications", map[string]string{
			"PaymentStatus": ev.PaymentStatus,
			"OrderStatus":   ev.OrderStatus,
		})
	default:
		// unknown event types are dropped, not retried
		log.Printf("[worker] dropping unknown event type %q", ev.Type)
		return nil
	}
}
