package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storebot/internal/pkg/config"
	"storebot/internal/pkg/errs"
	"storebot/internal/usecase/commands"
)

// MercadoPagoClient talks to the payment gateway over its REST API. Charges
// are created as PIX payments; the returned ticket URL is what the buyer
// opens to pay.
type MercadoPagoClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewMercadoPagoClient(cfg config.GatewayConfig) *MercadoPagoClient {
	return &MercadoPagoClient{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ commands.GatewayClient = (*MercadoPagoClient)(nil)

type createPaymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	ExternalReference string       `json:"external_reference"`
	Payer             paymentPayer `json:"payer"`
}

type paymentPayer struct {
	Email string `json:"email"`
}

type paymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	ExternalReference  string      `json:"external_reference"`
	TransactionAmount  float64     `json:"transaction_amount"`
	PointOfInteraction struct {
		TransactionData struct {
			TicketURL string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
	Payer struct {
		Email string `json:"email"`
	} `json:"payer"`
}

func (c *MercadoPagoClient) CreateCharge(ctx context.Context, in commands.CreateChargeInput) (commands.ChargeHandle, error) {
	body := createPaymentRequest{
		TransactionAmount: float64(in.AmountCents) / 100,
		Description:       in.Description,
		PaymentMethodID:   "pix",
		ExternalReference: in.Correlation.String(),
		Payer:             paymentPayer{Email: in.BuyerContact},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return commands.ChargeHandle{}, errs.Wrap(err, "failed to encode charge request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return commands.ChargeHandle{}, errs.Wrap(err, "failed to build charge request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	// The gateway deduplicates retried creates on this key, so a network
	// timeout followed by a retry cannot double-charge the buyer.
	req.Header.Set("X-Idempotency-Key", in.Correlation.String())

	var resp paymentResponse
	if err := c.do(req, &resp); err != nil {
		return commands.ChargeHandle{}, errs.Wrap(err, "failed to create charge")
	}

	return commands.ChargeHandle{
		ChargeID:   resp.ID.String(),
		PaymentURL: resp.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}

func (c *MercadoPagoClient) GetChargeStatus(ctx context.Context, chargeID string) (commands.ChargeStatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+chargeID, nil)
	if err != nil {
		return commands.ChargeStatusResult{}, errs.Wrap(err, "failed to build status request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	var resp paymentResponse
	if err := c.do(req, &resp); err != nil {
		return commands.ChargeStatusResult{}, errs.Wrap(err, "failed to fetch charge status")
	}

	result := commands.ChargeStatusResult{
		Status: decodeChargeStatus(resp.Status),
	}
	if resp.TransactionAmount > 0 {
		cents := int64(resp.TransactionAmount*100 + 0.5)
		result.ApprovedAmountCents = &cents
	}
	if resp.Payer.Email != "" {
		email := resp.Payer.Email
		result.PayerEmail = &email
	}
	return result, nil
}

func (c *MercadoPagoClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.New(fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode gateway response")
	}
	return nil
}

// decodeChargeStatus maps the gateway's status vocabulary onto the engine's
// enum exactly once. Statuses we have never seen decode to ChargeUnknown
// rather than failing, so a new gateway state cannot wedge the webhook.
func decodeChargeStatus(raw string) commands.ChargeStatus {
	switch raw {
	case "approved":
		return commands.ChargeApproved
	case "pending":
		return commands.ChargePending
	case "in_process", "in_mediation", "authorized":
		return commands.ChargeInProcess
	case "rejected":
		return commands.ChargeRejected
	case "cancelled":
		return commands.ChargeCancelled
	case "refunded":
		return commands.ChargeRefunded
	case "charged_back":
		return commands.ChargeChargedBack
	default:
		return commands.ChargeUnknown
	}
}
