package controllers

import (
	"net/http"

	"github.com/olea-shop/olea-backend/api/responses"
	dashboardsvc "github.com/olea-shop/olea-backend/internal/dashboard"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

// AdminDashboard serves store-wide counts and paid revenue.
func AdminDashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		byStatus := make(map[string]int64, len(summary.OrdersByStatus))
		for status, count := range summary.OrdersByStatus {
			byStatus[string(status)] = count
		}

		responses.WriteSuccess(w, map[string]any{
			"users":            summary.Users,
			"products":         summary.Products,
			"active_products":  summary.ActiveProducts,
			"orders":           summary.Orders,
			"orders_by_status": byStatus,
			"paid_revenue":     summary.PaidRevenue.StringFixed(2),
		})
	}
}
