package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

type repository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Product, string, error)
}

// Service exposes catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Product, string, error)
}

// CreateInput carries validated fields for a new catalog entry.
type CreateInput struct {
	Name        string
	Description string
	Category    enums.ProductCategory
	AgeRange    enums.AgeRange
	Price       decimal.Decimal
	ImageURL    string
	Stock       int
}

// UpdateInput carries optional changes. Nil pointers leave columns untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Category    *enums.ProductCategory
	AgeRange    *enums.AgeRange
	Price       *decimal.Decimal
	ImageURL    *string
	Stock       *int
	Status      *enums.ProductStatus
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	if input.AgeRange == "" {
		input.AgeRange = enums.AgeRangeAll
	}
	if !input.AgeRange.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid age range")
	}
	if input.Price.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		AgeRange:    input.AgeRange,
		Price:       input.Price,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Stock:       input.Stock,
		Status:      enums.ProductStatusActive,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID.String()), "product created")
	return product, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	changes := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name must not be empty")
		}
		changes["name"] = name
	}
	if input.Description != nil {
		changes["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
		}
		changes["category"] = *input.Category
	}
	if input.AgeRange != nil {
		if !input.AgeRange.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid age range")
		}
		changes["age_range"] = *input.AgeRange
	}
	if input.Price != nil {
		if input.Price.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
		}
		changes["price"] = *input.Price
	}
	if input.ImageURL != nil {
		changes["image_url"] = strings.TrimSpace(*input.ImageURL)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		changes["stock"] = *input.Stock
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
		}
		changes["status"] = *input.Status
	}

	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no changes supplied")
	}
	if err := s.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product deleted")
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Product, string, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	if filter.AgeRange != "" && !filter.AgeRange.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid age range")
	}
	return s.repo.List(ctx, filter, cursor, limit)
}
