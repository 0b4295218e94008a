package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mix-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Provider supplies the purchasable catalog. It is read once per
// designer session; the session works against the resulting snapshot.
type Provider interface {
	Catalog(ctx context.Context) ([]models.CatalogItem, error)
}

// Store is the Postgres-backed catalog provider.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to the catalog database.
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Catalog retrieves all purchasable products ordered by code.
func (s *Store) Catalog(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT code, name, retail_price, initial_stock FROM products ORDER BY code")
	return items, err
}

// Product retrieves a single product by code.
func (s *Store) Product(ctx context.Context, code string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := s.db.GetContext(ctx, &item,
		"SELECT code, name, retail_price, initial_stock FROM products WHERE code = $1", code)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", code)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Snapshot is an immutable per-session view of the catalog with lookup
// by product code. Codes are unique across the catalog.
type Snapshot struct {
	items  []models.CatalogItem
	byCode map[string]models.CatalogItem
}

// NewSnapshot builds a snapshot from a provider's item list.
func NewSnapshot(items []models.CatalogItem) *Snapshot {
	byCode := make(map[string]models.CatalogItem, len(items))
	for _, it := range items {
		byCode[it.Code] = it
	}
	return &Snapshot{items: items, byCode: byCode}
}

// Items returns the ordered item list.
func (s *Snapshot) Items() []models.CatalogItem {
	return s.items
}

// Item looks up a catalog item by code.
func (s *Snapshot) Item(code string) (models.CatalogItem, bool) {
	it, ok := s.byCode[code]
	return it, ok
}
