package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"van-binh/internal/logger"
	"van-binh/internal/models"
)

var ErrEmptyOrder = errors.New("order is empty")

const journalTimeout = 5 * time.Second

// Service places orders against the customer directory of one desk session
type Service struct {
	directory *models.CustomerDirectory
	journals  []Journal
	logger    *logger.Logger
	sessionID uuid.UUID
}

func NewService(directory *models.CustomerDirectory, log *logger.Logger, journals ...Journal) *Service {
	return &Service{
		directory: directory,
		journals:  journals,
		logger:    log,
		sessionID: uuid.New(),
	}
}

func (s *Service) SessionID() uuid.UUID {
	return s.sessionID
}

// LookupCustomer returns the customer saved under name, if any
func (s *Service) LookupCustomer(name string) (models.Customer, bool) {
	return s.directory.FindCustomer(name)
}

// SaveFavorite remembers a snapshot of the order for the customer
func (s *Service) SaveFavorite(name string, order models.Order) {
	s.directory.AddCustomer(name, order)
	s.logger.Info("customer_saved", fmt.Sprintf("Saved favorite order for %s", name), s.sessionID.String(), map[string]interface{}{
		"customer_name": name,
		"item_count":    order.ItemCount(),
	})
}

// PlaceOrder numbers and prices a non-empty order and advances the counter.
// Journal failures are logged; the customer still gets the receipt.
func (s *Service) PlaceOrder(ctx context.Context, customerName string, order models.Order) (models.Receipt, error) {
	if order.IsEmpty() {
		return models.Receipt{}, ErrEmptyOrder
	}

	receipt := models.NewReceipt(s.sessionID, s.directory.OrdersCount(), customerName, order)
	s.directory.AdvanceOrderCount()

	s.logger.Info("order_placed", fmt.Sprintf("Placed order %d", receipt.Number), s.sessionID.String(), map[string]interface{}{
		"order_number":  receipt.Number,
		"customer_name": customerName,
		"item_count":    order.ItemCount(),
		"takeaway":      order.IsTakeaway(),
		"total_amount":  receipt.Total,
	})

	s.record(ctx, receipt)
	return receipt, nil
}

func (s *Service) record(ctx context.Context, receipt models.Receipt) {
	for _, journal := range s.journals {
		journalCtx, cancel := context.WithTimeout(ctx, journalTimeout)
		err := journal.RecordReceipt(journalCtx, receipt)
		cancel()
		if err != nil {
			s.logger.Error("journal_failed", fmt.Sprintf("Failed to record receipt in %s", journal.Name()), s.sessionID.String(), err, map[string]interface{}{
				"order_number": receipt.Number,
			})
		}
	}
}
