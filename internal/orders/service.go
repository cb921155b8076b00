package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/internal/pricing"
	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

// referenceAttempts bounds collision retries when minting order references.
const referenceAttempts = 3

// ShippingDetails is the delivery address captured at checkout.
type ShippingDetails struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// MaterializeInput carries everything needed to freeze an order.
type MaterializeInput struct {
	UserID           uuid.UUID
	Quote            *pricing.Quote
	PaymentMethod    enums.PaymentMethod
	Status           enums.OrderStatus
	PaymentStatus    enums.PaymentStatus
	GatewayOrderID   *string
	GatewayPaymentID *string
	Shipping         ShippingDetails
}

// Service exposes order materialization, lookup, and admin transitions.
type Service interface {
	Materialize(ctx context.Context, tx *gorm.DB, input MaterializeInput) (*models.Order, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	GetByReference(ctx context.Context, userID uuid.UUID, reference string) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Order, string, error)
	ListAll(ctx context.Context, status enums.OrderStatus, cursor string, limit int) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the orders service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Materialize freezes the quote into an order row plus line items. Prices and
// totals are copied from the quote, never recomputed afterward. Runs on the
// caller's transaction when one is supplied.
func (s *service) Materialize(ctx context.Context, tx *gorm.DB, input MaterializeInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.Quote == nil || len(input.Quote.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if !input.Status.IsValid() || !input.PaymentStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "invalid initial order state")
	}

	repo := s.repo.WithTx(tx)

	items := make([]models.OrderItem, 0, len(input.Quote.Lines))
	for _, line := range input.Quote.Lines {
		items = append(items, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
		})
	}

	var lastErr error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		reference, err := NewReference()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint order reference")
		}

		order := &models.Order{
			ID:               uuid.New(),
			Reference:        reference,
			UserID:           input.UserID,
			Subtotal:         input.Quote.Subtotal,
			Shipping:         input.Quote.Shipping,
			Total:            input.Quote.Total,
			PaymentMethod:    input.PaymentMethod,
			Status:           input.Status,
			PaymentStatus:    input.PaymentStatus,
			GatewayOrderID:   input.GatewayOrderID,
			GatewayPaymentID: input.GatewayPaymentID,
			ShippingName:     input.Shipping.Name,
			ShippingPhone:    input.Shipping.Phone,
			ShippingAddress:  input.Shipping.Address,
			ShippingCity:     input.Shipping.City,
			ShippingState:    input.Shipping.State,
			ShippingPincode:  input.Shipping.Pincode,
			Items:            items,
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}

		err = repo.Create(ctx, order)
		if err == nil {
			s.logg.Info(s.logg.WithOrderRef(ctx, order.Reference), "order materialized")
			return order, nil
		}
		if !errors.Is(err, ErrReferenceTaken) {
			return nil, err
		}
		lastErr = err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "order reference collisions exhausted retries")
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id required")
	}
	return s.repo.FindByID(ctx, orderID, &userID)
}

func (s *service) GetByReference(ctx context.Context, userID uuid.UUID, reference string) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}
	return s.repo.FindByReference(ctx, reference, &userID)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Order, string, error) {
	if userID == uuid.Nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	return s.repo.List(ctx, ListFilter{UserID: &userID}, cursor, limit)
}

func (s *service) ListAll(ctx context.Context, status enums.OrderStatus, cursor string, limit int) ([]models.Order, string, error) {
	if status != "" && !status.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	return s.repo.List(ctx, ListFilter{Status: status}, cursor, limit)
}

// UpdateStatus overwrites the fulfillment status with whatever valid value the
// admin supplies. Transitions are not restricted to a forward path; support
// staff correct mistakes by moving orders backward.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, orderID, nil)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_ref": order.Reference,
		"status":    status.String(),
	}), "order status updated")
	return order, nil
}
