package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/internal/orders"
	"github.com/olea-shop/olea-backend/internal/pricing"
	"github.com/olea-shop/olea-backend/pkg/db/models"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
	"github.com/olea-shop/olea-backend/pkg/metrics"
	"github.com/olea-shop/olea-backend/pkg/razorpay"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartRepo is the slice of the cart store checkout needs. Clear reports
// how many rows it removed so callers can detect a competing checkout.
type CartRepo interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type signatureVerifier func(orderID, paymentID, signature string) bool

// PaymentSession is handed to the client to drive the gateway widget.
type PaymentSession struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	KeyID          string
	Quote          *pricing.Quote
}

// ShippingInput is the address block collected at checkout.
type ShippingInput struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// VerifyInput carries the gateway callback fields.
type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Method           enums.PaymentMethod
	Shipping         ShippingInput
}

// Service executes checkout orchestration.
type Service interface {
	// PlaceCashOrder freezes the cart into a pending order paid on delivery.
	PlaceCashOrder(ctx context.Context, userID uuid.UUID, shipping ShippingInput) (*models.Order, error)
	// InitiatePayment prices the cart and registers a gateway order. No
	// local order exists until the payment is verified.
	InitiatePayment(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) (*PaymentSession, error)
	// VerifyAndPlaceOrder checks the gateway signature and, on success,
	// freezes the cart into a paid order.
	VerifyAndPlaceOrder(ctx context.Context, userID uuid.UUID, input VerifyInput) (*models.Order, error)
}

type service struct {
	tx       txRunner
	cartRepo CartRepo
	cartTx   func(tx *gorm.DB) CartRepo
	orders   orders.Service
	engine   *pricing.Engine
	gateway  razorpay.OrderCreator
	verify   signatureVerifier
	keyID    string
	currency string
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
}

// Config wires the checkout service dependencies.
type Config struct {
	Tx       txRunner
	CartRepo CartRepo
	// CartTx rebinds the cart repo to a transaction.
	CartTx   func(tx *gorm.DB) CartRepo
	Orders   orders.Service
	Engine   *pricing.Engine
	Gateway  razorpay.OrderCreator
	Verify   signatureVerifier
	KeyID    string
	Currency string
	Metrics  *metrics.CheckoutMetrics
	Logger   *logger.Logger
}

// NewService builds the checkout service.
func NewService(cfg Config) (Service, error) {
	if cfg.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cfg.CartRepo == nil || cfg.CartTx == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if cfg.Orders == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway client required")
	}
	if cfg.Verify == nil {
		return nil, fmt.Errorf("signature verifier required")
	}
	if cfg.Currency == "" {
		return nil, fmt.Errorf("currency required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:       cfg.Tx,
		cartRepo: cfg.CartRepo,
		cartTx:   cfg.CartTx,
		orders:   cfg.Orders,
		engine:   cfg.Engine,
		gateway:  cfg.Gateway,
		verify:   cfg.Verify,
		keyID:    cfg.KeyID,
		currency: cfg.Currency,
		metrics:  cfg.Metrics,
		logg:     cfg.Logger,
	}, nil
}

func validateShipping(shipping ShippingInput) error {
	missing := []string{}
	for field, value := range map[string]string{
		"name":    shipping.Name,
		"phone":   shipping.Phone,
		"address": shipping.Address,
		"city":    shipping.City,
		"pincode": shipping.Pincode,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping details incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

func toShippingDetails(shipping ShippingInput) orders.ShippingDetails {
	return orders.ShippingDetails{
		Name:    strings.TrimSpace(shipping.Name),
		Phone:   strings.TrimSpace(shipping.Phone),
		Address: strings.TrimSpace(shipping.Address),
		City:    strings.TrimSpace(shipping.City),
		State:   strings.TrimSpace(shipping.State),
		Pincode: strings.TrimSpace(shipping.Pincode),
	}
}

func (s *service) PlaceCashOrder(ctx context.Context, userID uuid.UUID, shipping ShippingInput) (*models.Order, error) {
	started := time.Now()
	method := enums.PaymentMethodCash

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := validateShipping(shipping); err != nil {
		s.metrics.IncFailed(method.String(), "validation")
		return nil, err
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartTx(tx)

		items, err := cartRepo.ListItems(ctx, userID)
		if err != nil {
			return err
		}
		quote, err := s.engine.Price(items)
		if err != nil {
			return err
		}

		order, err = s.orders.Materialize(ctx, tx, orders.MaterializeInput{
			UserID:        userID,
			Quote:         quote,
			PaymentMethod: method,
			Status:        enums.OrderStatusPending,
			PaymentStatus: enums.PaymentStatusPending,
			Shipping:      toShippingDetails(shipping),
		})
		if err != nil {
			return err
		}

		return drainCart(ctx, cartRepo, userID, len(items))
	})
	if err != nil {
		s.metrics.IncFailed(method.String(), failureReason(err))
		return nil, err
	}

	s.metrics.IncPlaced(method.String())
	s.metrics.ObserveDuration(method.String(), time.Since(started))
	s.logg.Info(s.logg.WithOrderRef(ctx, order.Reference), "cash order placed")
	return order, nil
}

func (s *service) InitiatePayment(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) (*PaymentSession, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !method.IsValid() || !method.RequiresGateway() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method does not use the gateway")
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	quote, err := s.engine.Price(items)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeEmptyCart) {
			s.metrics.IncFailed(method.String(), "empty_cart")
		}
		return nil, err
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   quote.Total,
		Currency: s.currency,
		Notes:    map[string]string{"user_id": userID.String()},
	})
	if err != nil {
		s.metrics.IncFailed(method.String(), "gateway")
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "gateway_order_id", gatewayOrder.ID), "payment initiated")
	return &PaymentSession{
		GatewayOrderID: gatewayOrder.ID,
		AmountMinor:    gatewayOrder.AmountMinor,
		Currency:       gatewayOrder.Currency,
		KeyID:          s.keyID,
		Quote:          quote,
	}, nil
}

func (s *service) VerifyAndPlaceOrder(ctx context.Context, userID uuid.UUID, input VerifyInput) (*models.Order, error) {
	started := time.Now()
	method := input.Method
	if method == "" {
		method = enums.PaymentMethodCard
	}
	if !method.IsValid() || !method.RequiresGateway() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method does not use the gateway")
	}

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(input.GatewayOrderID) == "" || strings.TrimSpace(input.GatewayPaymentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gateway order and payment ids required")
	}
	if err := validateShipping(input.Shipping); err != nil {
		s.metrics.IncFailed(method.String(), "validation")
		return nil, err
	}

	// Signature check happens before any state is touched. A forged
	// callback must leave the cart and order tables untouched.
	if !s.verify(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		s.metrics.IncFailed(method.String(), "signature")
		s.logg.Warn(s.logg.WithField(ctx, "gateway_order_id", input.GatewayOrderID), "payment signature mismatch")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "payment signature mismatch")
	}

	gatewayOrderID := strings.TrimSpace(input.GatewayOrderID)
	gatewayPaymentID := strings.TrimSpace(input.GatewayPaymentID)

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartTx(tx)

		items, err := cartRepo.ListItems(ctx, userID)
		if err != nil {
			return err
		}
		quote, err := s.engine.Price(items)
		if err != nil {
			return err
		}

		order, err = s.orders.Materialize(ctx, tx, orders.MaterializeInput{
			UserID:           userID,
			Quote:            quote,
			PaymentMethod:    method,
			Status:           enums.OrderStatusProcessing,
			PaymentStatus:    enums.PaymentStatusPaid,
			GatewayOrderID:   &gatewayOrderID,
			GatewayPaymentID: &gatewayPaymentID,
			Shipping:         toShippingDetails(input.Shipping),
		})
		if err != nil {
			return err
		}

		return drainCart(ctx, cartRepo, userID, len(items))
	})
	if err != nil {
		s.metrics.IncFailed(method.String(), failureReason(err))
		return nil, err
	}

	s.metrics.IncPlaced(method.String())
	s.metrics.ObserveDuration(method.String(), time.Since(started))
	s.logg.Info(s.logg.WithOrderRef(ctx, order.Reference), "paid order placed")
	return order, nil
}

// drainCart deletes the cart rows the quote was priced from. Under read
// committed, a request racing another checkout of the same cart reads the
// rows before the winner's delete commits but its own delete then removes
// fewer rows than it priced. Failing here rolls the duplicate order back, so
// exactly one order survives and the loser surfaces an empty cart.
func drainCart(ctx context.Context, repo CartRepo, userID uuid.UUID, priced int) error {
	deleted, err := repo.Clear(ctx, userID)
	if err != nil {
		return err
	}
	if deleted < int64(priced) {
		return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	return nil
}

func failureReason(err error) string {
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeEmptyCart):
		return "empty_cart"
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return "validation"
	case pkgerrors.HasCode(err, pkgerrors.CodeGateway):
		return "gateway"
	default:
		return "internal"
	}
}
