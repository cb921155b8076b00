package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*models.Order, error)
	FindByReference(ctx context.Context, reference string, userID *uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}

// ListFilter narrows order listings.
type ListFilter struct {
	UserID *uuid.UUID
	Status enums.OrderStatus
}
