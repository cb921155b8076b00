package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/pagination"
)

// ErrReferenceTaken signals an order reference collision.
var ErrReferenceTaken = errors.New("order reference already taken")

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts the order and its line items. A duplicate reference surfaces
// as ErrReferenceTaken so the caller can retry with a fresh one.
func (r *repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return gorm.ErrInvalidValue
	}
	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil && (pkgerrors.IsUniqueViolation(err, "orders_reference_key") ||
		pkgerrors.IsUniqueViolation(err, "idx_orders_reference") ||
		errors.Is(err, gorm.ErrDuplicatedKey)) {
		return ErrReferenceTaken
	}
	return err
}

// FindByID loads one order with items. When userID is non-nil the lookup is
// scoped to that owner.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*models.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	var order models.Order
	err := query.First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByReference loads one order by its customer-facing identifier.
func (r *repository) FindByReference(ctx context.Context, reference string, userID *uuid.UUID) (*models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("reference = ?", strings.ToUpper(strings.TrimSpace(reference)))
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	var order models.Order
	err := query.First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a cursor page of orders, newest first.
func (r *repository) List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]models.Order, string, error) {
	normalizedLimit := pagination.Clamp(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Order
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Limit(pagination.FetchLimit(limit)).
		Find(&records).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	return records, nextCursor, nil
}

// UpdateStatus overwrites the fulfillment status.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

// PaidRevenue sums order totals that have been collected.
func (r *repository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

// CountByStatus returns order counts grouped by fulfillment status.
func (r *repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	type row struct {
		Status enums.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, rec := range rows {
		counts[rec.Status] = rec.Count
	}
	return counts, nil
}
