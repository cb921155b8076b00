package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/olea-shop/olea-backend/pkg/enums"
)

type orderStats interface {
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// Summary is the admin dashboard read model.
type Summary struct {
	Users          int64
	Products       int64
	ActiveProducts int64
	Orders         int64
	OrdersByStatus map[enums.OrderStatus]int64
	PaidRevenue    decimal.Decimal
}

// Service aggregates store-wide counts for the admin dashboard.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	orders   orderStats
	users    userCounter
	products productCounter
}

// NewService builds the dashboard service.
func NewService(orders orderStats, users userCounter, products productCounter) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order stats required")
	}
	if users == nil {
		return nil, fmt.Errorf("user counter required")
	}
	if products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	return &service{orders: orders, users: users, products: products}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	activeCount, err := s.products.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.PaidRevenue(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	return &Summary{
		Users:          userCount,
		Products:       productCount,
		ActiveProducts: activeCount,
		Orders:         total,
		OrdersByStatus: byStatus,
		PaidRevenue:    revenue,
	}, nil
}
