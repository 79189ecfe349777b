package salesrepo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_date TEXT NOT NULL,
    total_amount REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);

CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    quantity_in_stock INTEGER NOT NULL
);
`

var _ Repo = (*SQLiteRepo)(nil)

// SQLiteRepo persists orders and products in a SQLite database file.
type SQLiteRepo struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the schema exists.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data folder: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteRepo{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteRepo) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteRepo) AddOrder(ctx context.Context, order Order) error {
	if order.OrderDate == "" {
		return fmt.Errorf("order date is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO orders (order_date, total_amount) VALUES (?, ?)`,
		order.OrderDate, order.TotalAmount)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *SQLiteRepo) AddProduct(ctx context.Context, product Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO products (name, quantity_in_stock) VALUES (?, ?)`,
		product.Name, product.QuantityInStock)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *SQLiteRepo) Totals(ctx context.Context) (Totals, error) {
	var (
		t   Totals
		sum sql.NullFloat64
	)
	row := s.sqlDB.QueryRowContext(ctx, `SELECT SUM(total_amount), COUNT(*) FROM orders`)
	if err := row.Scan(&sum, &t.TotalOrders); err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	t.TotalSales = sum.Float64
	return t, nil
}

func (s *SQLiteRepo) DailySales(ctx context.Context) ([]DailySales, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT order_date, SUM(total_amount)
		FROM orders
		GROUP BY order_date
		ORDER BY order_date`)
	if err != nil {
		return nil, fmt.Errorf("query daily sales: %w", err)
	}
	defer rows.Close()

	daily := make([]DailySales, 0)
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Sales); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		daily = append(daily, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily sales: %w", err)
	}
	return daily, nil
}

func (s *SQLiteRepo) SalesSince(ctx context.Context, since string) (float64, error) {
	var total sql.NullFloat64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT SUM(total_amount) FROM orders WHERE order_date >= ?`, since)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("query sales since %s: %w", since, err)
	}
	return total.Float64, nil
}

func (s *SQLiteRepo) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, quantity_in_stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Name, &p.QuantityInStock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
