package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

const maxQuantityPerLine = 99

type cartRepository interface {
	WithTx(tx *gorm.DB) *Repository
	Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Summary is the cart read model with a running subtotal.
type Summary struct {
	Items    []models.CartItem
	Subtotal decimal.Decimal
}

// Service exposes cart operations.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     cartRepository
	products productLoader
}

// NewService builds the cart service.
func NewService(repo cartRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if quantity <= 0 || quantity > maxQuantityPerLine {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between 1 and %d", maxQuantityPerLine))
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Status != enums.ProductStatusActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	return s.repo.Upsert(ctx, userID, productID, quantity)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 || quantity > maxQuantityPerLine {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be between 1 and %d", maxQuantityPerLine))
	}
	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &Summary{Items: items, Subtotal: subtotal}, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := s.repo.Clear(ctx, userID)
	return err
}
