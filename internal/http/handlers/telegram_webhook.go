package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/sy-number-bot/internal/messaging/telegramclient"
	observemetrics "github.com/wolfman30/sy-number-bot/internal/observability/metrics"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

var telegramTracer = otel.Tracer("numberbot.internal.http.telegram")

// maxUpdateBytes bounds the webhook body; Telegram updates are a few KB.
const maxUpdateBytes = 1 << 20

// Update outcomes reported to metrics.
const (
	outcomeReplied      = "replied"
	outcomeIgnored      = "ignored"
	outcomeInvalid      = "invalid"
	outcomeSendFailed   = "send_failed"
	outcomeUnauthorized = "unauthorized"
)

type telegramSender interface {
	SendMessage(ctx context.Context, req telegramclient.SendMessageRequest) (*telegramclient.Message, error)
}

type answerer interface {
	Answer(ctx context.Context, text string) string
}

// TelegramWebhookHandler answers Telegram updates sent to /webhook/{token}.
type TelegramWebhookHandler struct {
	token       []byte
	telegram    telegramSender
	answers     answerer
	logger      *logging.Logger
	metrics     *observemetrics.LookupMetrics
	sendTimeout time.Duration
}

type TelegramWebhookConfig struct {
	BotToken    string
	Telegram    telegramSender
	Answers     answerer
	Logger      *logging.Logger
	Metrics     *observemetrics.LookupMetrics
	SendTimeout time.Duration
}

func NewTelegramWebhookHandler(cfg TelegramWebhookConfig) *TelegramWebhookHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Telegram == nil {
		panic("handlers: telegram sender cannot be nil")
	}
	if cfg.Answers == nil {
		panic("handlers: answerer cannot be nil")
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	return &TelegramWebhookHandler{
		token:       []byte(cfg.BotToken),
		telegram:    cfg.Telegram,
		answers:     cfg.Answers,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		sendTimeout: cfg.SendTimeout,
	}
}

// HandleUpdate processes POST /webhook/{token}. Every update that passes the
// token check is acknowledged with 200 so Telegram does not redeliver it.
func (h *TelegramWebhookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := telegramTracer.Start(r.Context(), "telegram.webhook")
	defer span.End()
	start := time.Now()

	if !h.tokenMatches(chi.URLParam(r, "token")) {
		h.logger.Warn("telegram webhook token mismatch", "remote_ip", r.RemoteAddr)
		span.RecordError(errors.New("webhook token mismatch"))
		h.metrics.ObserveUpdate(outcomeUnauthorized, time.Since(start).Seconds())
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	outcome := h.process(ctx, r)
	span.SetAttributes(attribute.String("numberbot.update.outcome", outcome))
	h.metrics.ObserveUpdate(outcome, time.Since(start).Seconds())
	writeOK(w)
}

func (h *TelegramWebhookHandler) process(ctx context.Context, r *http.Request) string {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBytes))
	if err != nil {
		h.logger.Error("failed to read telegram update", "error", err)
		return outcomeInvalid
	}
	update, err := telegramclient.ParseUpdate(body)
	if err != nil {
		h.logger.Error("invalid telegram update", "error", err)
		return outcomeInvalid
	}
	chatID, text, err := update.IncomingText()
	switch {
	case errors.Is(err, telegramclient.ErrNoText):
		return outcomeIgnored
	case err != nil:
		h.logger.Warn("telegram update without chat", "update_id", update.UpdateID, "error", err)
		return outcomeInvalid
	}

	reply := h.answers.Answer(ctx, text)

	sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()
	if _, err := h.telegram.SendMessage(sendCtx, telegramclient.SendMessageRequest{
		ChatID:    chatID,
		Text:      reply,
		ParseMode: telegramclient.ParseModeHTML,
	}); err != nil {
		h.logger.Error("failed to send telegram reply", "error", err, "chat_id", chatID, "update_id", update.UpdateID)
		h.metrics.ObserveOutbound("error")
		return outcomeSendFailed
	}
	h.metrics.ObserveOutbound("ok")
	h.logger.Info("telegram update answered", "chat_id", chatID, "update_id", update.UpdateID)
	return outcomeReplied
}

func (h *TelegramWebhookHandler) tokenMatches(candidate string) bool {
	if len(h.token) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(h.token, []byte(candidate)) == 1
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
