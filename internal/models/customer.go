package models

// Customer is a returning guest with the order they asked us to remember
type Customer struct {
	Name          string
	FavoriteOrder Order
}

// CustomerDirectory keeps the customers saved during this run and the
// number of the next order to be placed.
type CustomerDirectory struct {
	ordersCount int
	customers   []Customer
}

// NewCustomerDirectory creates an empty directory whose first order is no. 1
func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{
		ordersCount: 1,
	}
}

// AddCustomer appends a customer. An existing customer with the same
// name is left untouched and keeps winning lookups.
func (d *CustomerDirectory) AddCustomer(name string, favoriteOrder Order) {
	d.customers = append(d.customers, Customer{
		Name:          name,
		FavoriteOrder: favoriteOrder,
	})
}

// FindCustomer returns the first customer saved under exactly this name
func (d *CustomerDirectory) FindCustomer(name string) (Customer, bool) {
	for _, c := range d.customers {
		if c.Name == name {
			return c, true
		}
	}
	return Customer{}, false
}

// OrdersCount returns the number the next placed order will get
func (d *CustomerDirectory) OrdersCount() int {
	return d.ordersCount
}

// AdvanceOrderCount moves on to the next order number
func (d *CustomerDirectory) AdvanceOrderCount() {
	d.ordersCount++
}

// Len returns the number of saved customer records, shadowed duplicates included
func (d *CustomerDirectory) Len() int {
	return len(d.customers)
}
