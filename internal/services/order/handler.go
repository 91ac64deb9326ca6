package order

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"van-binh/internal/logger"
	"van-binh/internal/models"
)

// Handler runs the conversation at the counter, one line of input at a time
type Handler struct {
	service *Service
	in      *bufio.Reader
	out     io.Writer
	logger  *logger.Logger
}

// NewHandler creates a new order desk handler
func NewHandler(service *Service, in io.Reader, out io.Writer, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  log,
	}
}

// Run greets customers until an empty name (or end of input) closes the desk
func (h *Handler) Run(ctx context.Context) error {
	requestID := h.service.SessionID().String()
	h.logger.Info("desk_opened", "Order desk opened", requestID, nil)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.say("Hi! Welcome to Van Binh! What's your name?")
		name, err := h.readLine()
		if err != nil {
			return err
		}
		if name == "" {
			break
		}

		if err := h.serveCustomer(ctx, name); err != nil {
			return err
		}
	}

	h.say("Bye!")
	h.logger.Info("desk_closed", "Order desk closed", requestID, nil)
	return nil
}

func (h *Handler) serveCustomer(ctx context.Context, name string) error {
	var (
		order    models.Order
		newGuest bool
		err      error
	)

	if customer, ok := h.service.LookupCustomer(name); ok {
		h.say(fmt.Sprintf("Welcome back, %s!", customer.Name))
		same, err := h.yesNo("Same as usual?")
		if err != nil {
			return err
		}
		if same {
			order = customer.FavoriteOrder
		} else if order, err = h.takeOrder(); err != nil {
			return err
		}
	} else {
		h.say(fmt.Sprintf("Welcome, %s!", name))
		newGuest = true
		if order, err = h.takeOrder(); err != nil {
			return err
		}
	}

	if order.IsEmpty() {
		h.say("Your order is empty!")
		return nil
	}

	if newGuest {
		save, err := h.yesNo("Would you like to save this order?")
		if err != nil {
			return err
		}
		if save {
			h.service.SaveFavorite(name, order)
		}
	}

	receipt, err := h.service.PlaceOrder(ctx, name, order)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	for _, line := range receipt.Lines() {
		h.say(line)
	}
	return nil
}

// takeOrder collects dishes until an empty line, then asks about takeaway
func (h *Handler) takeOrder() (models.Order, error) {
	order := models.NewOrder()
	for {
		h.say("Enter dish name or empty line to finish:")
		line, err := h.readLine()
		if err != nil {
			return order, err
		}
		if line == "" {
			break
		}

		dish, ok := ParseDish(line)
		if !ok {
			h.say(fmt.Sprintf("Unknown dish name: %s", line))
			continue
		}
		order.AddDish(dish)
		h.logger.Debug("dish_added", fmt.Sprintf("Added %s", dish), h.service.SessionID().String(), nil)
	}

	takeaway, err := h.yesNo("Takeaway?")
	if err != nil {
		return order, err
	}
	if takeaway {
		order.SetTakeaway()
	}
	return order, nil
}

// yesNo treats only a literal "y" as yes
func (h *Handler) yesNo(question string) (bool, error) {
	h.say(fmt.Sprintf("%s (y/n)", question))
	answer, err := h.readLine()
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// readLine returns the next trimmed line of any length. End of input
// reads as an empty line.
func (h *Handler) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (h *Handler) say(line string) {
	fmt.Fprintln(h.out, line)
}
