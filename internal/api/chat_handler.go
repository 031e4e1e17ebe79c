package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/prompts"

	"github.com/robelasefa/mafirestaurant/internal/common"
	"github.com/robelasefa/mafirestaurant/internal/llm"
	"github.com/robelasefa/mafirestaurant/internal/retriever"
)

// fallbackReply is the degraded answer for generation failures, timeouts,
// and empty completions. Never replaced by a raw error.
const fallbackReply = "I don't have that information right now. Please contact the restaurant directly and we'll be happy to help."

// shortQueryTokenLimit marks a message as a short follow-up whose
// retrieval query gets augmented with recent conversation text.
const shortQueryTokenLimit = 2

var systemTemplate = prompts.NewPromptTemplate(
	`You are {{.brand}}'s friendly, on-brand assistant.
Your job:
- Answer ONLY questions about {{.brand}}: menu items, prices when provided, meeting halls, reservations, opening hours, location, contact details, policies, and general dining info.
- If the user asks anything unrelated, politely decline and guide them back to restaurant topics.
- Be concise, warm, and professional. Use **bold** for emphasis and structure with line breaks.
- If the user asks for details not in the provided context, say you don't have that information and suggest contacting the restaurant directly.
- Never fabricate prices, promotions, or availability.
- Prefer concrete facts from context; if context conflicts with prior assumptions, prefer the context.

Context (authoritative, may be partial):
{{.context}}`,
	[]string{"brand", "context"},
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req chatRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			logger.Warn("api: chat decode failed", "error", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if strings.TrimSpace(req.Message) == "" {
		// The widget also sends the question as a query parameter.
		req.Message = r.URL.Query().Get("message")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		logger.Warn("api: chat message missing")
		writeError(w, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	logger.Info("api: chat request received", "message_length", len(message), "history_turns", len(req.History))

	key := strings.ToLower(message)
	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("api: chat served from cache")
		writeJSON(w, http.StatusOK, chatResponse{
			Reply:          cached,
			Sources:        []chatSource{},
			ConversationID: conversationID,
			Provider:       s.providerName(),
			Cached:         true,
		})
		return
	}

	history := trimHistory(req.History, s.cfg.HistoryTurns)
	query := retrievalQuery(message, history)
	results := s.index.Search(query, s.cfg.TopK)
	contextBlock := retriever.FormatContext(results, s.cfg.ContextCharLimit)

	messages, err := s.buildMessages(contextBlock, history, message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.GenerateTimeout)
	defer cancel()
	answer := ""
	if s.provider != nil {
		answer, err = s.provider.Chat(ctx, messages)
		answer = strings.TrimSpace(answer)
	}
	if err != nil || answer == "" {
		if err != nil {
			logger.Error("api: chat completion failed", "error", err)
		} else {
			logger.Warn("api: chat completion empty")
		}
		answer = fallbackReply
	} else {
		s.cache.Set(key, answer)
	}

	sources := make([]chatSource, 0, len(results))
	for _, res := range results {
		sources = append(sources, chatSource{ID: res.ID, Section: res.Section})
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Reply:          answer,
		Sources:        sources,
		ConversationID: conversationID,
		Provider:       s.providerName(),
		Cached:         false,
	})
}

func (s *Server) buildMessages(contextBlock string, history []chatTurn, message string) ([]llm.Message, error) {
	if contextBlock == "" {
		contextBlock = "• No additional context found."
	}
	system, err := systemTemplate.Format(map[string]any{
		"brand":   s.brand,
		"context": contextBlock,
	})
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, turn := range history {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		if role != "user" && role != "assistant" {
			continue
		}
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: role, Content: content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: message})
	return messages, nil
}

func (s *Server) providerName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

func trimHistory(history []chatTurn, maxTurns int) []chatTurn {
	if maxTurns <= 0 || len(history) <= maxTurns {
		return history
	}
	return history[len(history)-maxTurns:]
}

// retrievalQuery augments short follow-up messages ("and what about...?")
// with recent conversation text so scoring has something to bite on.
func retrievalQuery(message string, history []chatTurn) string {
	if len(history) == 0 || len(retriever.Tokenize(message)) > shortQueryTokenLimit {
		return message
	}
	parts := []string{message}
	start := len(history) - 2
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		if content := strings.TrimSpace(turn.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " ")
}
