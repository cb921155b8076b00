package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olea-shop/olea-backend/pkg/db/models"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

// Line is one priced cart row. UnitPrice is read from the catalog at pricing
// time; the client never supplies prices.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

// Quote is the full pricing breakdown for a cart.
type Quote struct {
	Lines    []Line
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Engine computes order totals from live catalog prices and a flat shipping
// charge.
type Engine struct {
	shippingFlat decimal.Decimal
}

// NewEngine builds a pricing engine with the configured flat shipping fee.
func NewEngine(shippingFlat decimal.Decimal) (*Engine, error) {
	if shippingFlat.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping fee must not be negative")
	}
	return &Engine{shippingFlat: shippingFlat}, nil
}

// ShippingFlat exposes the configured charge for display purposes.
func (e *Engine) ShippingFlat() decimal.Decimal {
	return e.shippingFlat
}

// Price computes the quote for the given cart items. Every item must carry a
// preloaded product; unit prices come from the catalog rows, never from the
// caller.
func (e *Engine) Price(items []models.CartItem) (*Quote, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	quote := &Quote{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart item missing product")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item quantity must be positive")
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		quote.Lines = append(quote.Lines, Line{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
		quote.Subtotal = quote.Subtotal.Add(lineTotal)
	}

	quote.Shipping = e.shippingFlat
	quote.Total = quote.Subtotal.Add(quote.Shipping)
	return quote, nil
}
