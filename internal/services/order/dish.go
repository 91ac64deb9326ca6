package order

import (
	"strings"

	"van-binh/internal/models"
)

// ParseDish finds the dish a customer asked for. Any line mentioning a
// dish name counts, checked in menu order, so "chicken fried rice" is
// chicken.
func ParseDish(line string) (models.DishKind, bool) {
	for _, dish := range models.Dishes() {
		if strings.Contains(line, dish.String()) {
			return dish, true
		}
	}
	return 0, false
}
