// Package messenger sends messages to subscribers through the Messenger
// Send API.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gameday-relay/internal/config"
)

// Sender sends a single text message to one recipient.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) error
}

type sendRequest struct {
	Recipient recipient `json:"recipient"`
	Message   message   `json:"message"`
}

type recipient struct {
	ID string `json:"id"`
}

type message struct {
	Text string `json:"text"`
}

type sender struct {
	apiURL      string
	accessToken string
	client      *http.Client
}

// NewSender creates a Send API client authenticated with the page access
// token from cfg.
func NewSender(cfg *config.Config) Sender {
	return &sender{
		apiURL:      cfg.MessengerAPIURL,
		accessToken: cfg.PageAccessToken,
		client:      &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *sender) SendText(ctx context.Context, recipientID, text string) error {
	body, err := json.Marshal(sendRequest{
		Recipient: recipient{ID: recipientID},
		Message:   message{Text: text},
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	// The Send API authenticates via a query parameter, not a header.
	endpoint := fmt.Sprintf("%s?access_token=%s", s.apiURL, url.QueryEscape(s.accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("send API returned %d: %s", resp.StatusCode, b)
	}
	return nil
}
