package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storebot/internal/pkg/config"
	"storebot/internal/pkg/errs"
)

// TelegramNotifier sends deliveries as bot messages. The recipient is the
// buyer's chat id captured at checkout.
type TelegramNotifier struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewTelegramNotifier(cfg config.BotConfig) *TelegramNotifier {
	return &TelegramNotifier{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *TelegramNotifier) Send(ctx context.Context, recipient, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: recipient, Text: text})
	if err != nil {
		return errs.Wrap(err, "failed to encode message")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build message request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "message request failed")
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errs.Wrap(err, "failed to decode message response")
	}
	if !body.OK {
		return errs.New(fmt.Sprintf("message rejected: %s", body.Description))
	}
	return nil
}
