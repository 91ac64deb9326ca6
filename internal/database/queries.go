package database

// Receipt queries
const (
	InsertReceiptSQL = `
		INSERT INTO receipts (session_id, order_number, customer_name, chicken, tofu, rice, takeaway, total_amount, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
)
