package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olea-shop/olea-backend/pkg/enums"
)

// Order is an immutable snapshot of a checkout. Totals and line prices are
// frozen at creation; later catalog edits never touch them.
type Order struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string    `gorm:"column:reference;type:text;not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	Subtotal decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Shipping decimal.Decimal `gorm:"column:shipping;type:numeric(10,2);not null"`
	Total    decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`

	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`

	GatewayOrderID   *string `gorm:"column:gateway_order_id"`
	GatewayPaymentID *string `gorm:"column:gateway_payment_id"`

	ShippingName    string `gorm:"column:shipping_name;not null"`
	ShippingPhone   string `gorm:"column:shipping_phone;not null"`
	ShippingAddress string `gorm:"column:shipping_address;not null"`
	ShippingCity    string `gorm:"column:shipping_city;not null"`
	ShippingState   string `gorm:"column:shipping_state"`
	ShippingPincode string `gorm:"column:shipping_pincode;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
