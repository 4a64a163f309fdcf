package domain

import (
	"sort"
	"time"
)

// Customer is derived, never stored: it is aggregated from the full
// order list on every load and carries no identity beyond what orders do.
type Customer struct {
	UserID     string    `json:"userid"`
	FirstOrder time.Time `json:"first_order"`
	Orders     int       `json:"orders"`
	TotalSpent float64   `json:"total_spent"`
}

// AggregateCustomers groups orders by user id, counting orders, summing
// totals and keeping the earliest creation timestamp per user. The
// result is sorted by user id for stable presentation.
func AggregateCustomers(orders []Order) []Customer {
	byUser := make(map[string]*Customer)
	for _, o := range orders {
		c, ok := byUser[o.UserID]
		if !ok {
			byUser[o.UserID] = &Customer{
				UserID:     o.UserID,
				FirstOrder: o.CreatedAt,
				Orders:     1,
				TotalSpent: o.TotalPrice,
			}
			continue
		}
		c.Orders++
		c.TotalSpent += o.TotalPrice
		if o.CreatedAt.Before(c.FirstOrder) {
			c.FirstOrder = o.CreatedAt
		}
	}

	customers := make([]Customer, 0, len(byUser))
	for _, c := range byUser {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].UserID < customers[j].UserID })
	return customers
}
