package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gameday-relay/internal/application/subscription"
	"go.uber.org/zap"
)

// WebhookHandler serves the platform webhook endpoint pair: the GET
// verification challenge and the POST event delivery.
type WebhookHandler struct {
	verifyToken string
	svc         subscription.Service
	log         *zap.SugaredLogger
}

func NewWebhookHandler(verifyToken string, svc subscription.Service, log *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{verifyToken: verifyToken, svc: svc, log: log}
}

// webhookEvent mirrors the platform event payload. Only the first messaging
// item of each entry is meaningful.
type webhookEvent struct {
	Object string  `json:"object"`
	Entry  []entry `json:"entry"`
}

type entry struct {
	Messaging []messagingItem `json:"messaging"`
}

type messagingItem struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// command is one (sender, text) pair extracted from an event.
type command struct {
	senderID string
	text     string
}

// Verify answers the platform's webhook registration challenge.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "" || token == "" {
		writeError(w, http.StatusBadRequest, "missing hub.mode or hub.verify_token")
		return
	}
	if mode != "subscribe" || token != h.verifyToken {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h.log.Infow("webhook verified")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

// Receive accepts event deliveries. The 200 goes out as soon as the event
// shape is accepted; command handling continues in the background and its
// outcome only affects logs.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil || event.Object != "page" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var commands []command
	for _, e := range event.Entry {
		if len(e.Messaging) == 0 {
			continue
		}
		m := e.Messaging[0]
		if m.Message == nil || m.Message.Text == "" {
			continue
		}
		commands = append(commands, command{senderID: m.Sender.ID, text: m.Message.Text})
	}

	if len(commands) > 0 {
		// Detached from the request context: the response must not wait
		// for store mutations or reply delivery.
		go h.dispatch(context.Background(), commands)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("EVENT_RECEIVED"))
}

func (h *WebhookHandler) dispatch(ctx context.Context, commands []command) {
	for _, c := range commands {
		if err := h.svc.HandleMessage(ctx, c.senderID, c.text); err != nil {
			h.log.Errorw("command failed", "psid", c.senderID, "err", err)
		}
	}
}
