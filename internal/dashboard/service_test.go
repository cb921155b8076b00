package dashboard

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olea-shop/olea-backend/pkg/enums"
)

type stubOrderStats struct {
	byStatus map[enums.OrderStatus]int64
	revenue  decimal.Decimal
}

func (s *stubOrderStats) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	return s.byStatus, nil
}

func (s *stubOrderStats) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.revenue, nil
}

type stubUserCounter struct {
	count int64
}

func (s *stubUserCounter) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

type stubProductCounter struct {
	total  int64
	active int64
}

func (s *stubProductCounter) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if activeOnly {
		return s.active, nil
	}
	return s.total, nil
}

func TestSummaryAggregates(t *testing.T) {
	svc, err := NewService(
		&stubOrderStats{
			byStatus: map[enums.OrderStatus]int64{
				enums.OrderStatusPending:   3,
				enums.OrderStatusDelivered: 7,
			},
			revenue: decimal.RequireFromString("1925.50"),
		},
		&stubUserCounter{count: 42},
		&stubProductCounter{total: 12, active: 9},
	)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), summary.Users)
	assert.Equal(t, int64(12), summary.Products)
	assert.Equal(t, int64(9), summary.ActiveProducts)
	assert.Equal(t, int64(10), summary.Orders)
	assert.Equal(t, int64(3), summary.OrdersByStatus[enums.OrderStatusPending])
	assert.True(t, summary.PaidRevenue.Equal(decimal.RequireFromString("1925.50")))
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(nil, &stubUserCounter{}, &stubProductCounter{})
	require.Error(t, err)

	_, err = NewService(&stubOrderStats{}, nil, &stubProductCounter{})
	require.Error(t, err)

	_, err = NewService(&stubOrderStats{}, &stubUserCounter{}, nil)
	require.Error(t, err)
}
