package handler

//go:generate mockgen -destination=./service_mock_test.go -package=handler -source=chat.go ChatService
//go:generate mockgen -destination=./repository_mock_test.go -package=handler github.com/m2tx/workspace-assistant/internal/repository ExchangeRepository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m2tx/workspace-assistant/internal/agent"
	"github.com/m2tx/workspace-assistant/internal/model"
	"github.com/m2tx/workspace-assistant/internal/repository"
)

const (
	missingKeyMessage = "Server is missing GEMINI_API_KEY."
	auditTimeout      = 5 * time.Second

	// defaultMaxBodyBytes caps a chat request. The client resends the whole
	// transcript on every call.
	defaultMaxBodyBytes = 4 << 20
)

// ChatService runs one conversation exchange. *agent.Agent implements it.
type ChatService interface {
	Exchange(ctx context.Context, req agent.Request) (*agent.Result, error)
}

// ChatHandler is the HTTP layer for the chat relay.
type ChatHandler struct {
	service         ChatService
	audit           repository.ExchangeRepository
	defaultTimezone string
	maxBodyBytes    int64
	now             func() time.Time
	logger          *slog.Logger
}

// NewChatHandler wires the handler. service may be nil when no API key is
// configured; audit may be nil to disable exchange auditing.
func NewChatHandler(service ChatService, audit repository.ExchangeRepository, defaultTimezone string, logger *slog.Logger) *ChatHandler {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	return &ChatHandler{
		service:         service,
		audit:           audit,
		defaultTimezone: defaultTimezone,
		maxBodyBytes:    defaultMaxBodyBytes,
		now:             time.Now,
		logger:          logger,
	}
}

// RegisterRoutes attaches the chat endpoints to the router.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)

	if h.audit != nil {
		r.Get("/exchanges/{requestID}", h.handleGetExchange)
	}
}

// --- DTOs ---

// chatRequest is what the chat client sends. History is left untyped so
// malformed entries reach the normalizer instead of failing the decode.
type chatRequest struct {
	History  any    `json:"history"`
	Timezone string `json:"timezone"`
}

type chatResponse struct {
	ResponsePart   model.Part      `json:"response_part"`
	UpdatedHistory []model.Content `json:"updated_history"`
	RequestID      string          `json:"request_id"`
	Warning        string          `json:"warning,omitempty"`
}

// --- Handlers ---

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	if h.service == nil {
		h.logger.Error("chat request without provider credentials", "request_id", requestID)
		writeError(w, http.StatusInternalServerError, missingKeyMessage, requestID)
		return
	}

	var req chatRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("chat payload too large", "request_id", requestID, "limit", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, "Request payload too large", requestID)
			return
		}
		h.logger.Warn("invalid chat payload", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request payload", requestID)
		return
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = h.defaultTimezone
	}

	// A history that is not a list is treated as empty.
	history, _ := req.History.([]any)

	result, err := h.service.Exchange(r.Context(), agent.Request{History: history, Timezone: timezone})
	h.recordExchange(r.Context(), requestID, timezone, result, err)

	if err != nil {
		if agent.IsClientError(err) {
			h.logger.Warn("chat rejected", "request_id", requestID, "error", err)
			writeError(w, http.StatusBadRequest, err.Error(), requestID)
			return
		}
		h.logger.Error("chat exchange failed", "request_id", requestID, "timezone", timezone, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error(), requestID)
		return
	}

	h.logger.Info("chat exchange",
		"request_id", requestID,
		"timezone", timezone,
		"turn_kind", result.TurnKind.String(),
		"prior_turns", result.PriorTurns,
	)

	updated := result.UpdatedHistory
	if updated == nil {
		updated = []model.Content{}
	}
	writeJSON(w, http.StatusOK, chatResponse{
		ResponsePart:   result.ResponsePart,
		UpdatedHistory: updated,
		RequestID:      requestID,
		Warning:        result.Warning,
	})
}

func (h *ChatHandler) handleGetExchange(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	target := chi.URLParam(r, "requestID")

	record, err := h.audit.Load(r.Context(), target)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "exchange not found", requestID)
		return
	}
	if err != nil {
		h.logger.Error("load exchange", "request_id", requestID, "exchange_id", target, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load exchange", requestID)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// recordExchange writes the audit record. Failures are logged and never
// affect the response.
func (h *ChatHandler) recordExchange(ctx context.Context, requestID, timezone string, result *agent.Result, exchangeErr error) {
	if h.audit == nil {
		return
	}

	record := model.ExchangeRecord{
		RequestID: requestID,
		Timezone:  timezone,
		CreatedAt: h.now().UTC(),
	}
	if exchangeErr != nil {
		record.Error = exchangeErr.Error()
	}
	if result != nil {
		part := result.ResponsePart
		record.ResponsePart = &part
		record.TurnKind = result.TurnKind.String()
		record.PriorTurns = result.PriorTurns
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	if err := h.audit.Save(ctx, record); err != nil {
		h.logger.Warn("failed to save exchange audit", "request_id", requestID, "error", err)
	}
}
