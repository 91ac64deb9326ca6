package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"van-binh/internal/logger"
	"van-binh/internal/models"
)

// Publisher sends placed receipts to the receipts exchange
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

func (p *Publisher) Name() string {
	return "rabbitmq"
}

// RecordReceipt publishes the receipt as a persistent JSON message
func (p *Publisher) RecordReceipt(ctx context.Context, receipt models.Receipt) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	publishing, err := buildPublishing(receipt)
	if err != nil {
		return err
	}
	routingKey := models.GenerateRoutingKey(receipt.Order.IsTakeaway())

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		ReceiptsExchange, // exchange
		routingKey,       // routing key
		false,            // mandatory
		false,            // immediate
		publishing,
	)
	if err != nil {
		return fmt.Errorf("failed to publish receipt %d: %w", receipt.Number, err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published receipt %d to exchange %s", receipt.Number, ReceiptsExchange),
		receipt.SessionID.String(), map[string]interface{}{
			"routing_key":  routingKey,
			"message_size": len(publishing.Body),
		})

	return nil
}

func buildPublishing(receipt models.Receipt) (amqp091.Publishing, error) {
	body, err := json.Marshal(models.CreateReceiptMessage(receipt))
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("failed to marshal receipt: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    receipt.PlacedAt,
		MessageId:    fmt.Sprintf("%s-%d", receipt.SessionID, receipt.Number),
	}, nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
