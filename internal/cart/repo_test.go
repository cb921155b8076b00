package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// AutoMigrate emits the Postgres-only `DEFAULT gen_random_uuid()` from the
	// model tags, which sqlite rejects, so the schema is written by hand here.
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  age_range TEXT NOT NULL DEFAULT 'all',
  price NUMERIC NOT NULL,
  image_url TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	for _, ddl := range []string{products, cartItems} {
		if err := conn.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to migrate sqlite: %v", err)
		}
	}
	return conn
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Wooden Blocks",
		Category: enums.ProductCategoryToys,
		AgeRange: enums.AgeRangeAll,
		Price:    decimal.RequireFromString(price),
		Stock:    10,
		Status:   enums.ProductStatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestUpsertIncrementsQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateTestProduct(t, db, "225.50")

	if err := repo.Upsert(ctx, userID, product.ID, 1); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, userID, product.ID, 2); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	items, err := repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single cart row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if items[0].Product == nil || !items[0].Product.Price.Equal(decimal.RequireFromString("225.50")) {
		t.Fatalf("expected product preloaded with price, got %+v", items[0].Product)
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateTestProduct(t, db, "99.00")

	if err := repo.SetQuantity(ctx, userID, product.ID, 5); err == nil {
		t.Fatal("expected error for missing cart row")
	}

	if err := repo.Upsert(ctx, userID, product.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.SetQuantity(ctx, userID, product.ID, 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	items, err := repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", items)
	}

	if err := repo.RemoveItem(ctx, userID, product.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	items, err = repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(items))
	}
}

func TestClearOnlyTouchesOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	product := mustCreateTestProduct(t, db, "10.00")

	if err := repo.Upsert(ctx, alice, product.ID, 2); err != nil {
		t.Fatalf("upsert alice: %v", err)
	}
	if err := repo.Upsert(ctx, bob, product.ID, 1); err != nil {
		t.Fatalf("upsert bob: %v", err)
	}

	deleted, err := repo.Clear(ctx, alice)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 row deleted, got %d", deleted)
	}

	// A second clear has nothing left to remove.
	deleted, err = repo.Clear(ctx, alice)
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 rows deleted on empty cart, got %d", deleted)
	}

	aliceItems, err := repo.ListItems(ctx, alice)
	if err != nil {
		t.Fatalf("list alice: %v", err)
	}
	if len(aliceItems) != 0 {
		t.Fatalf("expected alice cart empty, got %d", len(aliceItems))
	}
	bobItems, err := repo.ListItems(ctx, bob)
	if err != nil {
		t.Fatalf("list bob: %v", err)
	}
	if len(bobItems) != 1 {
		t.Fatalf("expected bob cart untouched, got %d", len(bobItems))
	}
}
