// Package product provides the product model and its SQLite store.
// Products are plain records; all interesting request handling lives in
// the HTTP layer.
package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrMissingFields = errors.New("Name and price are required")
	ErrNotFound      = errors.New("Product not found")
)

// Product is a catalog entry.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Store persists products.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the products table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, name string, price float64) (*Product, error) {
	if name == "" || price == 0 {
		return nil, ErrMissingFields
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO products (name, price) VALUES (?, ?)`, name, price)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Product{ID: id, Name: name, Price: price}, nil
}

func (s *Store) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.QueryRowContext(ctx, `SELECT id, name, price FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *Store) Update(ctx context.Context, id int64, name string, price float64) (*Product, error) {
	if name == "" || price == 0 {
		return nil, ErrMissingFields
	}
	res, err := s.db.ExecContext(ctx, `UPDATE products SET name = ?, price = ? WHERE id = ?`, name, price, id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
