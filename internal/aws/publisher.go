package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Event types published to the order-events queue.
const (
	EventOrderCreated   = "order.created"
	EventPaymentUpdated = "payment.updated"
)

// OrderEvent is the message body for the order-events queue.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderCode     string    `json:"order_code"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	Amount        int64     `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL. A nil publisher (or
// empty queue URL) is a no-op so local setups without a queue still work.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishOrderEvent sends the event as JSON with the event type mirrored in a
// message attribute for consumer-side filtering.
func (p *Publisher) PublishOrderEvent(ctx context.Context, ev OrderEvent) error {
	if p == nil || p.QueueURL == "" {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	bodyStr := string(body)

	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &bodyStr,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {
				DataType:    awsString("String"),
				StringValue: &ev.Type,
			},
			"order_code": {
				DataType:    awsString("String"),
				StringValue: &ev.OrderCode,
			},
		},
	}

	if _, err := p.SQS.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }
