package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// AutoMigrate emits the Postgres-only `DEFAULT gen_random_uuid()` from the
	// model tags, which sqlite rejects, so the schema is written by hand here.
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  reference TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  shipping NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  gateway_order_id TEXT,
  gateway_payment_id TEXT,
  shipping_name TEXT NOT NULL,
  shipping_phone TEXT NOT NULL,
  shipping_address TEXT NOT NULL,
  shipping_city TEXT NOT NULL,
  shipping_state TEXT,
  shipping_pincode TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME
);`
	for _, ddl := range []string{orders, orderItems} {
		if err := conn.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to migrate sqlite: %v", err)
		}
	}
	return conn
}

func testOrder(userID uuid.UUID, reference string) *models.Order {
	orderID := uuid.New()
	return &models.Order{
		ID:              orderID,
		Reference:       reference,
		UserID:          userID,
		Subtotal:        decimal.RequireFromString("225.50"),
		Shipping:        decimal.RequireFromString("50"),
		Total:           decimal.RequireFromString("275.50"),
		PaymentMethod:   enums.PaymentMethodCash,
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
		ShippingName:    "Asha",
		ShippingPhone:   "9999999999",
		ShippingAddress: "12 Lane",
		ShippingCity:    "Pune",
		ShippingPincode: "411001",
		Items: []models.OrderItem{{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   uuid.New(),
			ProductName: "Wooden Blocks",
			Price:       decimal.RequireFromString("75.25"),
			Quantity:    2,
			LineTotal:   decimal.RequireFromString("150.50"),
		}},
	}
}

func TestCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	order := testOrder(userID, "AAAA111122")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID, &userID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Reference != "AAAA111122" {
		t.Fatalf("unexpected reference %q", found.Reference)
	}
	if len(found.Items) != 1 {
		t.Fatalf("expected items preloaded, got %d", len(found.Items))
	}

	otherUser := uuid.New()
	if _, err := repo.FindByID(ctx, order.ID, &otherUser); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	byRef, err := repo.FindByReference(ctx, "aaaa111122", &userID)
	if err != nil {
		t.Fatalf("find by reference: %v", err)
	}
	if byRef.ID != order.ID {
		t.Fatalf("reference lookup returned wrong order")
	}
}

func TestCreateDuplicateReference(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	if err := repo.Create(ctx, testOrder(userID, "DUPE000001")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, testOrder(userID, "DUPE000001"))
	if !errors.Is(err, ErrReferenceTaken) {
		t.Fatalf("expected ErrReferenceTaken, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := testOrder(uuid.New(), "STAT000001")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	found, err := repo.FindByID(ctx, order.ID, nil)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", found.Status)
	}

	if err := repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusShipped); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListScopesAndFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	if err := repo.Create(ctx, testOrder(alice, "LIST000001")); err != nil {
		t.Fatalf("create: %v", err)
	}
	shipped := testOrder(bob, "LIST000002")
	shipped.Status = enums.OrderStatusShipped
	if err := repo.Create(ctx, shipped); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, _, err := repo.List(ctx, ListFilter{UserID: &alice}, "", 10)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Reference != "LIST000001" {
		t.Fatalf("unexpected user listing %+v", mine)
	}

	byStatus, _, err := repo.List(ctx, ListFilter{Status: enums.OrderStatusShipped}, "", 10)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].Reference != "LIST000002" {
		t.Fatalf("unexpected status listing %+v", byStatus)
	}
}

func TestItemPriceSurvivesCatalogRepricing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Exec(`
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
);`).Error; err != nil {
		t.Fatalf("migrate products: %v", err)
	}
	repo := NewRepository(db)
	ctx := context.Background()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Wooden Blocks",
		Category: enums.ProductCategoryToys,
		AgeRange: enums.AgeRangeOneToTwo,
		Price:    decimal.RequireFromString("75.25"),
		Stock:    10,
		Status:   enums.ProductStatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	userID := uuid.New()
	order := testOrder(userID, "SNAP000001")
	order.Items[0].ProductID = product.ID
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := db.Model(product).Update("price", decimal.RequireFromString("999.99")).Error; err != nil {
		t.Fatalf("reprice product: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID, &userID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(found.Items))
	}
	if !found.Items[0].Price.Equal(decimal.RequireFromString("75.25")) {
		t.Fatalf("order item price moved with the catalog: %s", found.Items[0].Price)
	}
	if !found.Total.Equal(decimal.RequireFromString("275.50")) {
		t.Fatalf("order total moved with the catalog: %s", found.Total)
	}
}

func TestCountByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testOrder(uuid.New(), "CNT0000001")); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := testOrder(uuid.New(), "CNT0000002")
	second.Status = enums.OrderStatusDelivered
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts[enums.OrderStatusPending] != 1 || counts[enums.OrderStatusDelivered] != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}
