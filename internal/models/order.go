package models

import "fmt"

// Order holds one customer's dish counts and takeaway flag.
// It is a plain value: assigning it produces an independent snapshot.
type Order struct {
	counts   [dishKindCount]int
	takeaway bool
}

// NewOrder returns an empty eat-in order
func NewOrder() Order {
	return Order{}
}

// AddDish adds one portion of the dish
func (o *Order) AddDish(dish DishKind) {
	if !dish.Valid() {
		return
	}
	o.counts[dish]++
}

// SetTakeaway marks the order as takeaway. There is no way back.
func (o *Order) SetTakeaway() {
	o.takeaway = true
}

// CountOf returns how many portions of the dish were ordered
func (o Order) CountOf(dish DishKind) int {
	if !dish.Valid() {
		return 0
	}
	return o.counts[dish]
}

// ItemCount returns the number of portions across all dishes
func (o Order) ItemCount() int {
	total := 0
	for _, count := range o.counts {
		total += count
	}
	return total
}

// IsTakeaway reports whether the per-item takeaway fee applies
func (o Order) IsTakeaway() bool {
	return o.takeaway
}

// IsEmpty reports whether no dish was added
func (o Order) IsEmpty() bool {
	return o.ItemCount() == 0
}

// Total calculates the price of the order. The takeaway fee is charged
// per item on top of the dish sum.
func (o Order) Total() int {
	sum := 0
	for _, dish := range Dishes() {
		sum += o.CountOf(dish) * dish.Price()
	}

	if o.IsTakeaway() {
		return sum + o.ItemCount()*TakeawayFee
	}
	return sum
}

func (o Order) String() string {
	return fmt.Sprintf("chicken: %d, tofu: %d, rice: %d, takeaway: %t",
		o.CountOf(ChickenDish), o.CountOf(TofuDish), o.CountOf(RiceDish), o.IsTakeaway())
}
