package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/prompts"
)

// ChatRequest is the payload for both chat endpoints.
type ChatRequest struct {
	Messages      []llm.ChatMessage      `json:"messages"`
	ModuleContext string                 `json:"module_context,omitempty"`
	EntityContext *prompts.EntityContext `json:"entity_context,omitempty"`
	MaxTokens     int                    `json:"max_tokens,omitempty"`
}

// ChatResponse is the non-streaming chat completion response.
type ChatResponse struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

// streamDoneData is the payload of the terminal SSE done event.
type streamDoneData struct {
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
	StopReason string `json:"stop_reason"`
}

// ChatHandler handles chat completion requests, blocking and streaming.
type ChatHandler struct {
	factory          llm.ClientFactory
	defaultMaxTokens int
	logger           *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(factory llm.ClientFactory, defaultMaxTokens int, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		factory:          factory,
		defaultMaxTokens: defaultMaxTokens,
		logger:           logger,
	}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ai/chat/completions", h.Completions)
	mux.HandleFunc("POST /api/ai/chat/stream", h.Stream)
}

// Completions handles POST /api/ai/chat/completions.
func (h *ChatHandler) Completions(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	result, err := client.CreateCompletion(r.Context(), h.buildCompletionRequest(req))
	if err != nil {
		h.logger.Error("Chat completion failed", zap.Error(err))
		writeProviderError(w, h.logger, err)
		return
	}

	response := ChatResponse{
		Content:    result.Content,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
		StopReason: result.StopReason,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Stream handles POST /api/ai/chat/stream.
// The response is a server-sent-event stream: repeated text events carrying
// fragments in provider order, then exactly one done event with the
// aggregated metadata, or an error event on failure.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	client, err := h.factory.TextClient()
	if err != nil {
		writeProviderError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("SSE not supported")
		if err := ErrorResponse(w, http.StatusInternalServerError, "sse_unsupported", "SSE not supported"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	events := make(chan llm.StreamEvent, 100)

	go func() {
		// StreamCompletion closes the channel and delivers failures as a
		// terminal error event; the returned error is only logged here.
		if err := client.StreamCompletion(r.Context(), h.buildCompletionRequest(req), events); err != nil {
			h.logger.Error("Chat stream failed", zap.Error(err))
		}
	}()

	for event := range events {
		switch event.Type {
		case llm.StreamEventText:
			writeSSE(w, flusher, "text", event.Content)
		case llm.StreamEventDone:
			data, err := json.Marshal(streamDoneData{
				Model:      event.Result.Model,
				TokensUsed: event.Result.TokensUsed,
				StopReason: event.Result.StopReason,
			})
			if err != nil {
				h.logger.Error("Failed to marshal done event", zap.Error(err))
				continue
			}
			writeSSE(w, flusher, "done", string(data))
		case llm.StreamEventError:
			writeSSE(w, flusher, "error", event.Content)
		}
	}
}

// decodeRequest parses and validates the chat request body.
func (h *ChatHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*ChatRequest, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, h.logger, "invalid_request", "Invalid request body")
		return nil, false
	}

	if len(req.Messages) == 0 {
		writeClientError(w, h.logger, "missing_messages", "At least one message is required")
		return nil, false
	}

	return &req, true
}

func (h *ChatHandler) buildCompletionRequest(req *ChatRequest) *llm.CompletionRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = h.defaultMaxTokens
	}

	return &llm.CompletionRequest{
		System:    prompts.BuildChatSystemPrompt(req.ModuleContext, req.EntityContext),
		Messages:  req.Messages,
		MaxTokens: maxTokens,
	}
}

// writeSSE writes one named server-sent event and flushes it immediately.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
