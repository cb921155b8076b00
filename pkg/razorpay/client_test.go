package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/olea-shop/olea-backend/pkg/errors"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
		ok     bool
	}{
		{"275.50", 27550, true},
		{"50", 5000, true},
		{"0.01", 1, true},
		{"1.005", 0, false},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		got, err := MinorUnits(amount)
		if tc.ok && err != nil {
			t.Fatalf("MinorUnits(%s) returned error: %v", tc.amount, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("MinorUnits(%s) expected error", tc.amount)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestCreateOrder(t *testing.T) {
	var captured struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("unexpected basic auth %q %q", user, pass)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_abc123",
			"amount":   captured.Amount,
			"currency": captured.Currency,
			"receipt":  captured.Receipt,
			"status":   "created",
		})
	}))
	defer server.Close()

	client, err := NewClient("key_id", "key_secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   decimal.RequireFromString("275.50"),
		Currency: "INR",
		Receipt:  "A1B2C3D4E5",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if captured.Amount != 27550 {
		t.Fatalf("expected wire amount 27550, got %d", captured.Amount)
	}
	if order.ID != "order_abc123" {
		t.Fatalf("unexpected order id %q", order.ID)
	}
	if order.Currency != "INR" {
		t.Fatalf("unexpected currency %q", order.Currency)
	}
}

func TestCreateOrderGatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"upstream busy"}}`, http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient("key_id", "key_secret", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   decimal.RequireFromString("10.00"),
		Currency: "INR",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeGateway) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	client, err := NewClient("key_id", "key_secret")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   decimal.Zero,
		Currency: "INR",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "key_secret"
	orderID := "order_abc123"
	paymentID := "pay_xyz789"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	valid := hex.EncodeToString(mac.Sum(nil))

	if !VerifyPaymentSignature(secret, orderID, paymentID, valid) {
		t.Fatal("expected valid signature to verify")
	}

	// Flip one hex digit.
	forged := []byte(valid)
	if forged[0] == 'a' {
		forged[0] = 'b'
	} else {
		forged[0] = 'a'
	}
	if VerifyPaymentSignature(secret, orderID, paymentID, string(forged)) {
		t.Fatal("expected forged signature to fail")
	}

	if VerifyPaymentSignature(secret, orderID, "pay_other", valid) {
		t.Fatal("expected mismatched payment id to fail")
	}
	if VerifyPaymentSignature("", orderID, paymentID, valid) {
		t.Fatal("expected empty secret to fail")
	}
	if VerifyPaymentSignature(secret, orderID, paymentID, "") {
		t.Fatal("expected empty signature to fail")
	}
}
