package salesrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of Repo
type InMemoryRepo struct {
	mu       sync.RWMutex
	orders   []Order
	products []Product
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) AddOrder(_ context.Context, order Order) error {
	if order.OrderDate == "" {
		return fmt.Errorf("order date is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

func (r *InMemoryRepo) AddProduct(_ context.Context, product Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, product)
	return nil
}

func (r *InMemoryRepo) Totals(_ context.Context) (Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var t Totals
	for _, o := range r.orders {
		t.TotalSales += o.TotalAmount
		t.TotalOrders++
	}
	return t, nil
}

func (r *InMemoryRepo) DailySales(_ context.Context) ([]DailySales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := make(map[string]float64)
	for _, o := range r.orders {
		byDate[o.OrderDate] += o.TotalAmount
	}

	daily := make([]DailySales, 0, len(byDate))
	for date, sales := range byDate {
		daily = append(daily, DailySales{Date: date, Sales: sales})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily, nil
}

func (r *InMemoryRepo) SalesSince(_ context.Context, since string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, o := range r.orders {
		if o.OrderDate >= since {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (r *InMemoryRepo) Products(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Product{}, r.products...), nil
}
