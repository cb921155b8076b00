package controllers

import (
	"net/http"
	"strings"

	"github.com/olea-shop/olea-backend/api/responses"
	"github.com/olea-shop/olea-backend/api/validators"
	checkoutsvc "github.com/olea-shop/olea-backend/internal/checkout"
	"github.com/olea-shop/olea-backend/pkg/enums"
	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

type shippingPayload struct {
	Name    string `json:"name" validate:"required,min=2,max=128"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Address string `json:"address" validate:"required,max=512"`
	City    string `json:"city" validate:"required,max=128"`
	State   string `json:"state" validate:"omitempty,max=128"`
	Pincode string `json:"pincode" validate:"required,min=4,max=12"`
}

func (p shippingPayload) toInput() checkoutsvc.ShippingInput {
	return checkoutsvc.ShippingInput{
		Name:    strings.TrimSpace(p.Name),
		Phone:   strings.TrimSpace(p.Phone),
		Address: strings.TrimSpace(p.Address),
		City:    strings.TrimSpace(p.City),
		State:   strings.TrimSpace(p.State),
		Pincode: strings.TrimSpace(p.Pincode),
	}
}

type cashCheckoutRequest struct {
	Shipping shippingPayload `json:"shipping" validate:"required"`
}

// PlaceCashOrder freezes the cart into a cash-on-delivery order.
func PlaceCashOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cashCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceCashOrder(r.Context(), userID, payload.Shipping.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

type initiatePaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

// InitiatePayment registers a gateway order for the priced cart.
func InitiatePayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload initiatePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		session, err := svc.InitiatePayment(r.Context(), userID, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

type verifyPaymentRequest struct {
	GatewayOrderID   string          `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string          `json:"razorpay_payment_id" validate:"required"`
	Signature        string          `json:"razorpay_signature" validate:"required"`
	Method           string          `json:"method" validate:"omitempty"`
	Shipping         shippingPayload `json:"shipping" validate:"required"`
}

// VerifyPayment checks the gateway signature and places the paid order.
func VerifyPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.VerifyInput{
			GatewayOrderID:   payload.GatewayOrderID,
			GatewayPaymentID: payload.GatewayPaymentID,
			Signature:        payload.Signature,
			Shipping:         payload.Shipping.toInput(),
		}
		if raw := strings.TrimSpace(payload.Method); raw != "" {
			method, err := enums.ParsePaymentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			input.Method = method
		}

		order, err := svc.VerifyAndPlaceOrder(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}
