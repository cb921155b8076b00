package controllers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/olea-shop/olea-backend/internal/cart"
	checkoutsvc "github.com/olea-shop/olea-backend/internal/checkout"
	"github.com/olea-shop/olea-backend/pkg/db/models"
)

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Phone:     user.Phone,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLoginAt,
		CreatedAt: user.CreatedAt,
	}
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	AgeRange    string    `json:"age_range"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductResponse(product *models.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    string(product.Category),
		AgeRange:    string(product.AgeRange),
		Price:       product.Price.StringFixed(2),
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
	}
}

func newProductListResponse(products []models.Product, next string) map[string]any {
	items := make([]productResponse, len(products))
	for i := range products {
		items[i] = newProductResponse(&products[i])
	}
	return map[string]any{"items": items, "next_cursor": next}
}

type cartItemResponse struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *productResponse `json:"product,omitempty"`
	LineTotal string           `json:"line_total,omitempty"`
}

type cartResponse struct {
	Items    []cartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
}

func newCartResponse(summary *cartsvc.Summary) cartResponse {
	items := make([]cartItemResponse, len(summary.Items))
	for i, item := range summary.Items {
		out := cartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			product := newProductResponse(item.Product)
			out.Product = &product
			out.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
		}
		items[i] = out
	}
	return cartResponse{Items: items, Subtotal: summary.Subtotal.StringFixed(2)}
}

type wishlistItemResponse struct {
	ProductID uuid.UUID        `json:"product_id"`
	AddedAt   time.Time        `json:"added_at"`
	Product   *productResponse `json:"product,omitempty"`
}

func newWishlistResponse(items []models.WishlistItem) []wishlistItemResponse {
	out := make([]wishlistItemResponse, len(items))
	for i, item := range items {
		entry := wishlistItemResponse{ProductID: item.ProductID, AddedAt: item.CreatedAt}
		if item.Product != nil {
			product := newProductResponse(item.Product)
			entry.Product = &product
		}
		out[i] = entry
	}
	return out
}

type orderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

type orderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Reference        string              `json:"reference"`
	Subtotal         string              `json:"subtotal"`
	Shipping         string              `json:"shipping"`
	Total            string              `json:"total"`
	PaymentMethod    string              `json:"payment_method"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	GatewayOrderID   *string             `json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string             `json:"gateway_payment_id,omitempty"`
	ShippingName     string              `json:"shipping_name"`
	ShippingPhone    string              `json:"shipping_phone"`
	ShippingAddress  string              `json:"shipping_address"`
	ShippingCity     string              `json:"shipping_city"`
	ShippingState    string              `json:"shipping_state,omitempty"`
	ShippingPincode  string              `json:"shipping_pincode"`
	Items            []orderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal.StringFixed(2),
		}
	}
	return orderResponse{
		ID:               order.ID,
		Reference:        order.Reference,
		Subtotal:         order.Subtotal.StringFixed(2),
		Shipping:         order.Shipping.StringFixed(2),
		Total:            order.Total.StringFixed(2),
		PaymentMethod:    string(order.PaymentMethod),
		Status:           string(order.Status),
		PaymentStatus:    string(order.PaymentStatus),
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: order.GatewayPaymentID,
		ShippingName:     order.ShippingName,
		ShippingPhone:    order.ShippingPhone,
		ShippingAddress:  order.ShippingAddress,
		ShippingCity:     order.ShippingCity,
		ShippingState:    order.ShippingState,
		ShippingPincode:  order.ShippingPincode,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}

func newOrderListResponse(ordersList []models.Order, next string) map[string]any {
	items := make([]orderResponse, len(ordersList))
	for i := range ordersList {
		items[i] = newOrderResponse(&ordersList[i])
	}
	return map[string]any{"items": items, "next_cursor": next}
}

type paymentSessionResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	AmountMinor    int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
	Subtotal       string `json:"subtotal"`
	ShippingFee    string `json:"shipping"`
	Total          string `json:"total"`
}

func newPaymentSessionResponse(session *checkoutsvc.PaymentSession) paymentSessionResponse {
	out := paymentSessionResponse{
		GatewayOrderID: session.GatewayOrderID,
		AmountMinor:    session.AmountMinor,
		Currency:       session.Currency,
		KeyID:          session.KeyID,
	}
	if session.Quote != nil {
		out.Subtotal = session.Quote.Subtotal.StringFixed(2)
		out.ShippingFee = session.Quote.Shipping.StringFixed(2)
		out.Total = session.Quote.Total.StringFixed(2)
	}
	return out
}
