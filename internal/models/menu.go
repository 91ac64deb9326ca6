package models

// DishKind represents one of the dishes on the menu
type DishKind int

const (
	ChickenDish DishKind = iota
	TofuDish
	RiceDish

	dishKindCount
)

// TakeawayFee is charged once per item when an order is taken away
const TakeawayFee = 1

// Dishes returns every dish kind in menu order
func Dishes() []DishKind {
	return []DishKind{ChickenDish, TofuDish, RiceDish}
}

// Price returns the unit price of the dish
func (d DishKind) Price() int {
	switch d {
	case ChickenDish:
		return 20
	case TofuDish:
		return 15
	case RiceDish:
		return 12
	default:
		return 0
	}
}

// Valid reports whether d is one of the menu dishes
func (d DishKind) Valid() bool {
	return d >= ChickenDish && d < dishKindCount
}

func (d DishKind) String() string {
	switch d {
	case ChickenDish:
		return "chicken"
	case TofuDish:
		return "tofu"
	case RiceDish:
		return "rice"
	default:
		return "unknown"
	}
}
