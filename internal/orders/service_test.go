package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/internal/pricing"
	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

type stubOrdersRepo struct {
	collisions int
	created    []*models.Order
	statusSet  enums.OrderStatus
	order      *models.Order
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) error {
	if s.collisions > 0 {
		s.collisions--
		return ErrReferenceTaken
	}
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*models.Order, error) {
	if s.order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.order, nil
}

func (s *stubOrdersRepo) FindByReference(ctx context.Context, reference string, userID *uuid.UUID) (*models.Order, error) {
	if s.order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.order, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statusSet = status
	return nil
}

func (s *stubOrdersRepo) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	return nil, nil
}

func (s *stubOrdersRepo) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func testQuote() *pricing.Quote {
	productID := uuid.New()
	return &pricing.Quote{
		Lines: []pricing.Line{{
			ProductID:   productID,
			ProductName: "Wooden Blocks",
			UnitPrice:   decimal.RequireFromString("75.25"),
			Quantity:    2,
			LineTotal:   decimal.RequireFromString("150.50"),
		}, {
			ProductID:   uuid.New(),
			ProductName: "Plush Bear",
			UnitPrice:   decimal.RequireFromString("75.00"),
			Quantity:    1,
			LineTotal:   decimal.RequireFromString("75.00"),
		}},
		Subtotal: decimal.RequireFromString("225.50"),
		Shipping: decimal.RequireFromString("50"),
		Total:    decimal.RequireFromString("275.50"),
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel})
	svc, err := NewService(repo, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestMaterializeFreezesQuote(t *testing.T) {
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo)

	order, err := svc.Materialize(context.Background(), nil, MaterializeInput{
		UserID:        uuid.New(),
		Quote:         testQuote(),
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
		Shipping:      ShippingDetails{Name: "Asha", Phone: "9999999999", Address: "12 Lane", City: "Pune", Pincode: "411001"},
	})
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	if len(order.Reference) != ReferenceLength {
		t.Fatalf("expected %d-char reference, got %q", ReferenceLength, order.Reference)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("225.50")) {
		t.Fatalf("expected subtotal 225.50, got %s", order.Subtotal)
	}
	if !order.Total.Equal(decimal.RequireFromString("275.50")) {
		t.Fatalf("expected total 275.50, got %s", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.OrderID != order.ID {
			t.Fatalf("item not linked to order: %+v", item)
		}
	}
	if !order.Items[0].Price.Equal(decimal.RequireFromString("75.25")) {
		t.Fatalf("expected snapshot price 75.25, got %s", order.Items[0].Price)
	}
}

func TestMaterializeRetriesReferenceCollisions(t *testing.T) {
	repo := &stubOrdersRepo{collisions: 2}
	svc := newTestService(t, repo)

	order, err := svc.Materialize(context.Background(), nil, MaterializeInput{
		UserID:        uuid.New(),
		Quote:         testQuote(),
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("materialize after collisions: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created order, got %d", len(repo.created))
	}
	if order.Reference == "" {
		t.Fatal("expected a reference after retries")
	}
}

func TestMaterializeExhaustsRetries(t *testing.T) {
	repo := &stubOrdersRepo{collisions: referenceAttempts}
	svc := newTestService(t, repo)

	_, err := svc.Materialize(context.Background(), nil, MaterializeInput{
		UserID:        uuid.New(),
		Quote:         testQuote(),
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error after exhausted retries, got %v", err)
	}
}

func TestMaterializeRejectsEmptyQuote(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{})

	_, err := svc.Materialize(context.Background(), nil, MaterializeInput{
		UserID:        uuid.New(),
		Quote:         &pricing.Quote{},
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	repo := &stubOrdersRepo{order: &models.Order{ID: uuid.New(), Reference: "ABC123XYZ0"}}
	svc := newTestService(t, repo)

	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), "teleported"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	order, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.statusSet != enums.OrderStatusShipped {
		t.Fatalf("expected repo status shipped, got %s", repo.statusSet)
	}
	if order == nil {
		t.Fatal("expected updated order")
	}
}

func TestUpdateStatusAllowsBackwardTransition(t *testing.T) {
	repo := &stubOrdersRepo{order: &models.Order{ID: uuid.New(), Reference: "ABC123XYZ0", Status: enums.OrderStatusDelivered}}
	svc := newTestService(t, repo)

	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusPending); err != nil {
		t.Fatalf("expected backward transition to succeed, got %v", err)
	}
	if repo.statusSet != enums.OrderStatusPending {
		t.Fatalf("expected repo status pending, got %s", repo.statusSet)
	}
}
