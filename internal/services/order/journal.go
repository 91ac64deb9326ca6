package order

import (
	"context"

	"van-binh/internal/models"
)

// Journal records receipts of placed orders somewhere outside the process
type Journal interface {
	Name() string
	RecordReceipt(ctx context.Context, receipt models.Receipt) error
}
