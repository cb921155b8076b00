package wishlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

type wishlistRepository interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes wishlist operations.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
}

type service struct {
	repo     wishlistRepository
	products productLoader
}

// NewService builds the wishlist service.
func NewService(repo wishlistRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	// Verify the product exists so stale IDs surface as 404 instead of
	// silently creating danglers.
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.AddItem(ctx, userID, productID)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	return s.repo.ListItems(ctx, userID)
}
