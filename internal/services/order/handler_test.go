package order

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"van-binh/internal/logger"
	"van-binh/internal/models"
)

const (
	greeting  = "Hi! Welcome to Van Binh! What's your name?"
	dishQuery = "Enter dish name or empty line to finish:"
)

func runDesk(t *testing.T, input string) (string, *models.CustomerDirectory, error) {
	t.Helper()
	service, dir := setup(t)
	var out bytes.Buffer
	log := logger.NewWithWriter("van-binh-test", "debug", io.Discard)
	err := NewHandler(service, strings.NewReader(input), &out, log).Run(context.Background())
	return out.String(), dir, err
}

func transcript(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestHandlerNewThenReturningCustomer(t *testing.T) {
	input := transcript("Alice", "chicken", "tofu", "", "y", "y", "Alice", "y", "")

	out, dir, err := runDesk(t, input)
	require.NoError(t, err)

	assert.Equal(t, transcript(
		greeting,
		"Welcome, Alice!",
		dishQuery,
		dishQuery,
		dishQuery,
		"Takeaway? (y/n)",
		"Would you like to save this order? (y/n)",
		"This is order no. 1",
		"There you go: chicken: 1, tofu: 1, rice: 0, takeaway: true, it's going to be 37 zł",
		greeting,
		"Welcome back, Alice!",
		"Same as usual? (y/n)",
		"This is order no. 2",
		"There you go: chicken: 1, tofu: 1, rice: 0, takeaway: true, it's going to be 37 zł",
		greeting,
		"Bye!",
	), out)
	assert.Equal(t, 3, dir.OrdersCount())
	assert.Equal(t, 1, dir.Len())
}

func TestHandlerEmptyOrderIsNotCountedOrSaved(t *testing.T) {
	input := transcript("Bob", "pizza", "", "n", "Carol", "  rice ", "rice", "rice", "", "", "no")

	out, dir, err := runDesk(t, input)
	require.NoError(t, err)

	assert.Equal(t, transcript(
		greeting,
		"Welcome, Bob!",
		dishQuery,
		"Unknown dish name: pizza",
		dishQuery,
		"Takeaway? (y/n)",
		"Your order is empty!",
		greeting,
		"Welcome, Carol!",
		dishQuery,
		dishQuery,
		dishQuery,
		dishQuery,
		"Takeaway? (y/n)",
		"Would you like to save this order? (y/n)",
		"This is order no. 1",
		"There you go: chicken: 0, tofu: 0, rice: 3, takeaway: false, it's going to be 36 zł",
		greeting,
		"Bye!",
	), out)
	assert.Equal(t, 2, dir.OrdersCount())
	assert.Zero(t, dir.Len())

	_, saved := dir.FindCustomer("Bob")
	assert.False(t, saved)
}

func TestHandlerReturningCustomerOrdersSomethingElse(t *testing.T) {
	input := transcript("Dan", "tofu", "", "n", "y", "Dan", "n", "chicken", "", "y", "")

	out, dir, err := runDesk(t, input)
	require.NoError(t, err)

	assert.Contains(t, out, "There you go: chicken: 0, tofu: 1, rice: 0, takeaway: false, it's going to be 15 zł")
	assert.Contains(t, out, "This is order no. 2\nThere you go: chicken: 1, tofu: 0, rice: 0, takeaway: true, it's going to be 21 zł\n")
	assert.Equal(t, 1, strings.Count(out, "Would you like to save this order?"))

	customer, ok := dir.FindCustomer("Dan")
	require.True(t, ok)
	assert.Equal(t, 15, customer.FavoriteOrder.Total(), "favorite stays the saved snapshot")
}

func TestHandlerReturningCustomerWithEmptyNewOrder(t *testing.T) {
	input := transcript("Eve", "rice", "", "n", "y", "Eve", "n", "", "n", "")

	out, dir, err := runDesk(t, input)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, transcript("Takeaway? (y/n)", "Your order is empty!", greeting, "Bye!")))
	assert.Equal(t, 2, dir.OrdersCount())
}

func TestHandlerEndOfInput(t *testing.T) {
	out, dir, err := runDesk(t, "")
	require.NoError(t, err)
	assert.Equal(t, transcript(greeting, "Bye!"), out)
	assert.Equal(t, 1, dir.OrdersCount())

	// Input ending mid-order finishes the dish list and answers no
	out, dir, err = runDesk(t, "Frank\nchicken")
	require.NoError(t, err)
	assert.Contains(t, out, "This is order no. 1\n")
	assert.Contains(t, out, "it's going to be 20 zł\n")
	assert.Zero(t, dir.Len())
}

func TestHandlerCancelledContext(t *testing.T) {
	service, _ := setup(t)
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHandler(service, strings.NewReader("Alice\n"), &out, logger.NewWithWriter("test", "info", io.Discard)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestHandlerReadError(t *testing.T) {
	service, _ := setup(t)
	var out bytes.Buffer
	boom := errors.New("boom")

	err := NewHandler(service, iotest.ErrReader(boom), &out, logger.NewWithWriter("test", "info", io.Discard)).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, transcript(greeting), out.String())
}

func TestHandlerReadsVeryLongLines(t *testing.T) {
	longDish := strings.Repeat("x", 70000) + " chicken"
	input := transcript("Gina", longDish, "", "n", "n", "")

	out, dir, err := runDesk(t, input)
	require.NoError(t, err)
	assert.Contains(t, out, "This is order no. 1\n")
	assert.Contains(t, out, "There you go: chicken: 1, tofu: 0, rice: 0, takeaway: false, it's going to be 20 zł\n")
	assert.NotContains(t, out, "Unknown dish name")
	assert.Equal(t, 2, dir.OrdersCount())
}
