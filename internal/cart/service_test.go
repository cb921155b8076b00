package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

type stubCartRepo struct {
	items    []models.CartItem
	upserted map[uuid.UUID]int
	set      map[uuid.UUID]int
	cleared  bool
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) *Repository { return nil }

func (s *stubCartRepo) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if s.upserted == nil {
		s.upserted = map[uuid.UUID]int{}
	}
	s.upserted[productID] += quantity
	return nil
}

func (s *stubCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if s.set == nil {
		s.set = map[uuid.UUID]int{}
	}
	s.set[productID] = quantity
	return nil
}

func (s *stubCartRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

func (s *stubCartRepo) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCartRepo) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.cleared = true
	deleted := int64(len(s.items))
	s.items = nil
	return deleted, nil
}

type stubProducts struct {
	product *models.Product
}

func (s *stubProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.product, nil
}

func activeProduct(price string) *models.Product {
	return &models.Product{
		ID:     uuid.New(),
		Name:   "Wooden Blocks",
		Price:  decimal.RequireFromString(price),
		Status: enums.ProductStatusActive,
	}
}

func TestAddRejectsBadQuantity(t *testing.T) {
	svc, err := NewService(&stubCartRepo{}, &stubProducts{product: activeProduct("10")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	for _, qty := range []int{0, -1, 100} {
		if err := svc.Add(context.Background(), uuid.New(), uuid.New(), qty); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
}

func TestAddRejectsInactiveProduct(t *testing.T) {
	product := activeProduct("10")
	product.Status = enums.ProductStatusInactive
	svc, err := NewService(&stubCartRepo{}, &stubProducts{product: product})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Add(context.Background(), uuid.New(), product.ID, 1); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, err := NewService(&stubCartRepo{}, &stubProducts{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Add(context.Background(), uuid.New(), uuid.New(), 1); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddUpserts(t *testing.T) {
	repo := &stubCartRepo{}
	product := activeProduct("10")
	svc, err := NewService(repo, &stubProducts{product: product})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Add(context.Background(), uuid.New(), product.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := repo.upserted[product.ID]; got != 3 {
		t.Fatalf("expected upserted quantity 3, got %d", got)
	}
}

func TestGetComputesSubtotal(t *testing.T) {
	blocks := activeProduct("199.99")
	puzzle := activeProduct("50.01")
	repo := &stubCartRepo{items: []models.CartItem{
		{ProductID: blocks.ID, Quantity: 2, Product: blocks},
		{ProductID: puzzle.ID, Quantity: 1, Product: puzzle},
	}}
	svc, err := NewService(repo, &stubProducts{product: blocks})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if want := decimal.RequireFromString("449.99"); !summary.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, summary.Subtotal)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(summary.Items))
	}
}

func TestGetSkipsOrphanedLines(t *testing.T) {
	blocks := activeProduct("100")
	repo := &stubCartRepo{items: []models.CartItem{
		{ProductID: blocks.ID, Quantity: 1, Product: blocks},
		{ProductID: uuid.New(), Quantity: 5, Product: nil},
	}}
	svc, err := NewService(repo, &stubProducts{product: blocks})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if want := decimal.RequireFromString("100"); !summary.Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, summary.Subtotal)
	}
}

func TestUpdateQuantityValidates(t *testing.T) {
	repo := &stubCartRepo{}
	svc, err := NewService(repo, &stubProducts{product: activeProduct("10")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 0); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	productID := uuid.New()
	if err := svc.UpdateQuantity(context.Background(), uuid.New(), productID, 7); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.set[productID] != 7 {
		t.Fatalf("expected quantity 7, got %d", repo.set[productID])
	}
}
