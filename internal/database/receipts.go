package database

import (
	"context"
	"fmt"

	"van-binh/internal/models"
)

// ReceiptStore writes placed receipts to the receipts table
type ReceiptStore struct {
	db *DB
}

func NewReceiptStore(db *DB) *ReceiptStore {
	return &ReceiptStore{db: db}
}

func (s *ReceiptStore) Name() string {
	return "postgres"
}

// RecordReceipt inserts the receipt and returns once the row is committed
func (s *ReceiptStore) RecordReceipt(ctx context.Context, receipt models.Receipt) error {
	args := receiptArgs(receipt)

	var id int
	if err := s.db.QueryRow(ctx, InsertReceiptSQL, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to insert receipt %d: %w", receipt.Number, err)
	}

	s.db.logger.Debug("receipt_stored", fmt.Sprintf("Stored receipt %d", receipt.Number), receipt.SessionID.String(), map[string]interface{}{
		"receipt_id":   id,
		"order_number": receipt.Number,
	})
	return nil
}

// receiptArgs lists the InsertReceiptSQL parameters in order
func receiptArgs(r models.Receipt) []interface{} {
	msg := models.CreateReceiptMessage(r)
	return []interface{}{
		r.SessionID,
		msg.OrderNumber,
		msg.CustomerName,
		msg.Chicken,
		msg.Tofu,
		msg.Rice,
		msg.Takeaway,
		msg.TotalAmount,
		msg.PlacedAt,
	}
}
