//go:build unit

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storebot/internal/domain/order"
	"storebot/internal/pkg/config"
	"storebot/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) (*MercadoPagoClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewMercadoPagoClient(config.GatewayConfig{
		BaseURL:     srv.URL,
		AccessToken: "test-token",
		Timeout:     2 * time.Second,
	})
	return client, srv
}

func TestMercadoPagoClient_CreateCharge(t *testing.T) {
	correlation := order.CorrelationID{Kind: order.KindProduct, OrderID: uuid.New()}

	var captured createPaymentRequest
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, correlation.String(), r.Header.Get("X-Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": 12345678901,
			"status": "pending",
			"point_of_interaction": {"transaction_data": {"ticket_url": "https://pay.example/t/abc"}}
		}`))
	}))

	handle, err := client.CreateCharge(context.Background(), commands.CreateChargeInput{
		Correlation:  correlation,
		Description:  "Ebook: Go em producao",
		AmountCents:  4990,
		BuyerContact: "buyer@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "12345678901", handle.ChargeID)
	assert.Equal(t, "https://pay.example/t/abc", handle.PaymentURL)
	assert.Equal(t, "pix", captured.PaymentMethodID)
	assert.Equal(t, correlation.String(), captured.ExternalReference)
	assert.InDelta(t, 49.90, captured.TransactionAmount, 0.001)
	assert.Equal(t, "buyer@example.com", captured.Payer.Email)
}

func TestMercadoPagoClient_CreateCharge_GatewayError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	}))

	_, err := client.CreateCharge(context.Background(), commands.CreateChargeInput{
		Correlation: order.CorrelationID{Kind: order.KindProduct, OrderID: uuid.New()},
		AmountCents: 1000,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMercadoPagoClient_GetChargeStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/987", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 987,
			"status": "approved",
			"transaction_amount": 49.90,
			"payer": {"email": "buyer@example.com"}
		}`))
	}))

	result, err := client.GetChargeStatus(context.Background(), "987")
	require.NoError(t, err)

	assert.Equal(t, commands.ChargeApproved, result.Status)
	require.NotNil(t, result.ApprovedAmountCents)
	assert.Equal(t, int64(4990), *result.ApprovedAmountCents)
	require.NotNil(t, result.PayerEmail)
	assert.Equal(t, "buyer@example.com", *result.PayerEmail)
}

func TestDecodeChargeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want commands.ChargeStatus
	}{
		{"approved", commands.ChargeApproved},
		{"pending", commands.ChargePending},
		{"in_process", commands.ChargeInProcess},
		{"in_mediation", commands.ChargeInProcess},
		{"authorized", commands.ChargeInProcess},
		{"rejected", commands.ChargeRejected},
		{"cancelled", commands.ChargeCancelled},
		{"refunded", commands.ChargeRefunded},
		{"charged_back", commands.ChargeChargedBack},
		{"something_new", commands.ChargeUnknown},
		{"", commands.ChargeUnknown},
	}

	for _, tt := range tests {
		t.Run("status "+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeChargeStatus(tt.raw))
		})
	}
}
