// Package salesrepo stores the orders and products the demo backend reports on.
package salesrepo

import "context"

// DateLayout is the order_date format shared by the store and the /sales response
const DateLayout = "2006-01-02"

type Order struct {
	OrderDate   string // YYYY-MM-DD
	TotalAmount float64
}

type Product struct {
	Name            string
	QuantityInStock int
}

// Totals aggregates every order
type Totals struct {
	TotalSales  float64
	TotalOrders int
}

// DailySales is the sum of order amounts for one date
type DailySales struct {
	Date  string
	Sales float64
}

type Repo interface {
	AddOrder(ctx context.Context, order Order) error
	AddProduct(ctx context.Context, product Product) error

	// Totals sums and counts all orders. An empty store yields zero totals.
	Totals(ctx context.Context) (Totals, error)

	// DailySales groups orders by date, ordered by date ascending
	DailySales(ctx context.Context) ([]DailySales, error)

	// SalesSince sums orders dated on or after since (YYYY-MM-DD)
	SalesSince(ctx context.Context, since string) (float64, error)

	// Products lists products in insertion order
	Products(ctx context.Context) ([]Product, error)
}

// SampleProducts is the catalogue a fresh database starts with
var SampleProducts = []Product{
	{Name: "Croissant", QuantityInStock: 15},
	{Name: "Chocolate Cake", QuantityInStock: 50},
}

// SeedIfEmpty adds SampleProducts when repo has no products yet
func SeedIfEmpty(ctx context.Context, repo Repo) error {
	products, err := repo.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return nil
	}
	for _, p := range SampleProducts {
		if err := repo.AddProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
