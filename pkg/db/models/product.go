package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olea-shop/olea-backend/pkg/enums"
)

// Product is a catalog entry. Price is the live list price; order lines
// snapshot it at checkout time and never read it back.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	AgeRange    enums.AgeRange        `gorm:"column:age_range;type:text;not null;default:'all'"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL    string                `gorm:"column:image_url"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Status      enums.ProductStatus   `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
