package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Receipt is what the customer gets once a non-empty order is placed
type Receipt struct {
	Number       int
	CustomerName string
	Order        Order
	Total        int
	PlacedAt     time.Time
	SessionID    uuid.UUID
}

// NewReceipt prices the order and stamps it with the order number
func NewReceipt(sessionID uuid.UUID, number int, customerName string, order Order) Receipt {
	return Receipt{
		Number:       number,
		CustomerName: customerName,
		Order:        order,
		Total:        order.Total(),
		PlacedAt:     time.Now().UTC(),
		SessionID:    sessionID,
	}
}

// Lines returns the receipt as printed at the counter
func (r Receipt) Lines() []string {
	return []string{
		fmt.Sprintf("This is order no. %d", r.Number),
		fmt.Sprintf("There you go: %s, it's going to be %d zł", r.Order, r.Total),
	}
}

// ReceiptMessage is the journal form of a receipt
type ReceiptMessage struct {
	SessionID    string    `json:"session_id"`
	OrderNumber  int       `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	Chicken      int       `json:"chicken"`
	Tofu         int       `json:"tofu"`
	Rice         int       `json:"rice"`
	Takeaway     bool      `json:"takeaway"`
	ItemCount    int       `json:"item_count"`
	TotalAmount  int       `json:"total_amount"`
	PlacedAt     time.Time `json:"placed_at"`
}

// CreateReceiptMessage flattens a receipt for the journal
func CreateReceiptMessage(r Receipt) *ReceiptMessage {
	return &ReceiptMessage{
		SessionID:    r.SessionID.String(),
		OrderNumber:  r.Number,
		CustomerName: r.CustomerName,
		Chicken:      r.Order.CountOf(ChickenDish),
		Tofu:         r.Order.CountOf(TofuDish),
		Rice:         r.Order.CountOf(RiceDish),
		Takeaway:     r.Order.IsTakeaway(),
		ItemCount:    r.Order.ItemCount(),
		TotalAmount:  r.Total,
		PlacedAt:     r.PlacedAt,
	}
}

// GenerateRoutingKey generates a routing key for receipt messages
func GenerateRoutingKey(takeaway bool) string {
	if takeaway {
		return "receipts.takeaway"
	}
	return "receipts.eat_in"
}
