package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"van-binh/internal/logger"
	"van-binh/internal/messaging"
	"van-binh/internal/models"
)

// Display prints a kitchen ticket for every receipt placed at the counter
type Display struct {
	consumer *messaging.Consumer
	out      io.Writer
	logger   *logger.Logger
}

func NewDisplay(consumer *messaging.Consumer, out io.Writer, log *logger.Logger) *Display {
	return &Display{
		consumer: consumer,
		out:      out,
		logger:   log,
	}
}

// Start consumes receipts until ctx is cancelled
func (d *Display) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	d.logger.Info("service_started", "Kitchen display started", requestID, nil)

	err := d.consumer.StartConsuming(ctx, d.HandleReceipt)
	closeErr := d.consumer.Close()
	if ctx.Err() != nil {
		d.logger.Info("graceful_shutdown", "Kitchen display stopped", requestID, nil)
		return closeErr
	}
	return err
}

// HandleReceipt decodes one receipt message and prints its ticket
func (d *Display) HandleReceipt(ctx context.Context, body []byte) error {
	var msg models.ReceiptMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to parse receipt: %w", err)
	}
	if msg.ItemCount == 0 {
		return fmt.Errorf("receipt %d has no items", msg.OrderNumber)
	}

	if _, err := fmt.Fprintln(d.out, FormatTicket(&msg)); err != nil {
		return fmt.Errorf("failed to print ticket: %w", err)
	}

	d.logger.Debug("ticket_printed", fmt.Sprintf("Printed ticket for order %d", msg.OrderNumber), msg.SessionID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"item_count":   msg.ItemCount,
	})
	return nil
}

// FormatTicket renders a receipt message as a one-line kitchen ticket,
// e.g. "[12:30:05] #3 Alice (takeaway): 1x chicken, 1x tofu | 37 zł"
func FormatTicket(msg *models.ReceiptMessage) string {
	counts := map[models.DishKind]int{
		models.ChickenDish: msg.Chicken,
		models.TofuDish:    msg.Tofu,
		models.RiceDish:    msg.Rice,
	}

	var dishes []string
	for _, dish := range models.Dishes() {
		if n := counts[dish]; n > 0 {
			dishes = append(dishes, fmt.Sprintf("%dx %s", n, dish))
		}
	}

	service := "eat in"
	if msg.Takeaway {
		service = "takeaway"
	}

	return fmt.Sprintf("[%s] #%d %s (%s): %s | %d zł",
		msg.PlacedAt.Format("15:04:05"),
		msg.OrderNumber,
		msg.CustomerName,
		service,
		strings.Join(dishes, ", "),
		msg.TotalAmount,
	)
}
