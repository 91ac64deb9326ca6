package order

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"van-binh/internal/logger"
	"van-binh/internal/models"
)

type mockJournal struct {
	name     string
	receipts []models.Receipt
	err      error
}

func (m *mockJournal) Name() string {
	return m.name
}

func (m *mockJournal) RecordReceipt(ctx context.Context, receipt models.Receipt) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("journal called without deadline")
	}
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, receipt)
	return nil
}

func setup(t *testing.T, journals ...Journal) (*Service, *models.CustomerDirectory) {
	t.Helper()
	dir := models.NewCustomerDirectory()
	log := logger.NewWithWriter("van-binh-test", "debug", io.Discard)
	return NewService(dir, log, journals...), dir
}

func TestPlaceOrder(t *testing.T) {
	journal := &mockJournal{name: "memory"}
	service, dir := setup(t, journal)

	order := models.NewOrder()
	order.AddDish(models.ChickenDish)
	order.AddDish(models.TofuDish)
	order.SetTakeaway()

	receipt, err := service.PlaceOrder(context.Background(), "Alice", order)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Number)
	assert.Equal(t, 37, receipt.Total)
	assert.Equal(t, "Alice", receipt.CustomerName)
	assert.Equal(t, service.SessionID(), receipt.SessionID)
	assert.Equal(t, 2, dir.OrdersCount())

	second, err := service.PlaceOrder(context.Background(), "Bob", order)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 3, dir.OrdersCount())

	require.Len(t, journal.receipts, 2)
	assert.Equal(t, receipt, journal.receipts[0])
}

func TestPlaceOrderRejectsEmptyOrder(t *testing.T) {
	journal := &mockJournal{name: "memory"}
	service, dir := setup(t, journal)

	_, err := service.PlaceOrder(context.Background(), "Alice", models.NewOrder())
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Equal(t, 1, dir.OrdersCount())
	assert.Empty(t, journal.receipts)
}

func TestPlaceOrderSurvivesJournalFailure(t *testing.T) {
	broken := &mockJournal{name: "broken", err: errors.New("connection refused")}
	working := &mockJournal{name: "memory"}
	service, dir := setup(t, broken, working)

	order := models.NewOrder()
	order.AddDish(models.RiceDish)

	receipt, err := service.PlaceOrder(context.Background(), "Carol", order)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Number)
	assert.Equal(t, 2, dir.OrdersCount())
	assert.Len(t, working.receipts, 1)
}

func TestSaveFavorite(t *testing.T) {
	service, dir := setup(t)

	order := models.NewOrder()
	order.AddDish(models.TofuDish)
	service.SaveFavorite("Dave", order)

	customer, ok := service.LookupCustomer("Dave")
	require.True(t, ok)
	assert.Equal(t, order, customer.FavoriteOrder)
	assert.Equal(t, 1, dir.Len())
	assert.Equal(t, 1, dir.OrdersCount())

	_, ok = service.LookupCustomer("dave")
	assert.False(t, ok)
}

func TestParseDish(t *testing.T) {
	tests := []struct {
		line   string
		want   models.DishKind
		wantOK bool
	}{
		{"chicken", models.ChickenDish, true},
		{"chicken wing", models.ChickenDish, true},
		{"thai chicken", models.ChickenDish, true},
		{"tofu", models.TofuDish, true},
		{"fried rice", models.RiceDish, true},
		{"chicken fried rice", models.ChickenDish, true},
		{"tofu and rice", models.TofuDish, true},
		{"Chicken", 0, false},
		{"noodles", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseDish(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
