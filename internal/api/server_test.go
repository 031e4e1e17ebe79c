package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robelasefa/mafirestaurant/internal/kb"
	"github.com/robelasefa/mafirestaurant/internal/llm"
	"github.com/robelasefa/mafirestaurant/internal/retriever"
)

type mockProvider struct {
	chatResponse string
	chatErr      error
	chatCalls    int
	lastMessages []llm.Message
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.chatCalls++
	m.lastMessages = append([]llm.Message(nil), messages...)
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if m.chatResponse == "" {
		return "mock-response", nil
	}
	return m.chatResponse, nil
}

func (m *mockProvider) Name() string {
	return "mock"
}

func testIndex() *retriever.Index {
	docs := []kb.Doc{
		{ID: "brand", Section: "Brand", Text: "Mafi Restaurant. A family restaurant with private meeting halls."},
		{ID: "location", Section: "Location", Text: "Address: Main Street, Dessie."},
		{ID: "hours", Section: "Hours", Text: "Monday-Friday 8:00 AM–10:00 PM"},
		{ID: "services-reservations", Section: "Reservations", Text: "Reservations: Call us or book online via the booking page."},
		{ID: "services-meetingHalls", Section: "Meeting Halls", Text: "Meeting halls: One large hall and three small halls for meetings and events."},
		{ID: "menu-all", Section: "Menu", Text: "Signature menu: Special Kitfo, Doro Wot, Grilled Tilapia."},
	}
	return retriever.New(docs)
}

func newTestServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	srv, err := NewServer(testIndex(), "Mafi Restaurant", provider, nil)
	if err != nil {
		t.Fatalf("server construction failed: %v", err)
	}
	return srv
}

func postChat(t *testing.T, srv *Server, payload interface{}) (*httptest.ResponseRecorder, chatResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var resp chatResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestChatReturnsReplyAndSources(t *testing.T) {
	provider := &mockProvider{}
	srv := newTestServer(t, provider)
	rec, resp := postChat(t, srv, chatRequest{Message: "what time do you open"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Reply != "mock-response" {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
	if len(resp.Sources) == 0 {
		t.Fatalf("expected retrieval sources in the response")
	}
	if resp.Sources[0].Section != "Hours" {
		t.Fatalf("expected the Hours doc as top source, got %q", resp.Sources[0].Section)
	}
	if resp.ConversationID == "" {
		t.Fatalf("expected a minted conversation id")
	}
	if resp.Cached {
		t.Fatalf("first answer must not be marked cached")
	}
	if provider.chatCalls != 1 {
		t.Fatalf("expected exactly one generation call, got %d", provider.chatCalls)
	}
	if len(provider.lastMessages) < 2 || provider.lastMessages[0].Role != "system" {
		t.Fatalf("expected a system message first, got %+v", provider.lastMessages)
	}
	if !strings.Contains(provider.lastMessages[0].Content, "• [Hours]") {
		t.Fatalf("expected formatted context in the system prompt: %q", provider.lastMessages[0].Content)
	}
}

func TestChatCachesRepeatedQuestion(t *testing.T) {
	provider := &mockProvider{chatResponse: "We open at 8 AM."}
	srv := newTestServer(t, provider)
	if rec, _ := postChat(t, srv, chatRequest{Message: "What time do you OPEN?"}); rec.Code != http.StatusOK {
		t.Fatalf("first call failed: %d", rec.Code)
	}
	rec, resp := postChat(t, srv, chatRequest{Message: "what time do you open?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("second call failed: %d", rec.Code)
	}
	if !resp.Cached {
		t.Fatalf("expected the repeated question to be served from cache")
	}
	if resp.Reply != "We open at 8 AM." {
		t.Fatalf("unexpected cached reply %q", resp.Reply)
	}
	if provider.chatCalls != 1 {
		t.Fatalf("expected a single generation call, got %d", provider.chatCalls)
	}
}

func TestChatFallsBackOnProviderFailure(t *testing.T) {
	provider := &mockProvider{chatErr: fmt.Errorf("upstream unavailable")}
	srv := newTestServer(t, provider)
	rec, resp := postChat(t, srv, chatRequest{Message: "do you have vegetarian food"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected a degraded 200, got %d", rec.Code)
	}
	if resp.Reply != fallbackReply {
		t.Fatalf("expected the fallback reply, got %q", resp.Reply)
	}
	// Failures must not poison the cache.
	_, resp = postChat(t, srv, chatRequest{Message: "do you have vegetarian food"})
	if resp.Cached {
		t.Fatalf("failed generation must not be cached")
	}
	if provider.chatCalls != 2 {
		t.Fatalf("expected a retry to reach the provider, got %d calls", provider.chatCalls)
	}
}

func TestChatFallsBackOnEmptyCompletion(t *testing.T) {
	provider := &mockProvider{chatResponse: "   "}
	srv := newTestServer(t, provider)
	rec, resp := postChat(t, srv, chatRequest{Message: "where are you located"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Reply != fallbackReply {
		t.Fatalf("expected the fallback reply for an empty completion, got %q", resp.Reply)
	}
}

func TestChatRejectsMissingMessage(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	rec, _ := postChat(t, srv, chatRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing message, got %d", rec.Code)
	}
}

func TestChatAcceptsQueryParameter(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat?message=menu", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a query-parameter message, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChatPreservesConversationID(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	_, resp := postChat(t, srv, chatRequest{Message: "menu please", ConversationID: "conv-42"})
	if resp.ConversationID != "conv-42" {
		t.Fatalf("expected conversation id to round-trip, got %q", resp.ConversationID)
	}
}

func TestChatShortFollowUpUsesHistory(t *testing.T) {
	provider := &mockProvider{}
	srv := newTestServer(t, provider)
	history := []chatTurn{
		{Role: "user", Content: "can I book a meeting hall"},
		{Role: "assistant", Content: "Yes, our meeting halls can be booked by phone."},
	}
	rec, resp := postChat(t, srv, chatRequest{Message: "and prices?", History: history})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sections := make(map[string]struct{}, len(resp.Sources))
	for _, src := range resp.Sources {
		sections[src.Section] = struct{}{}
	}
	if _, ok := sections["Meeting Halls"]; !ok {
		t.Fatalf("expected history-augmented retrieval to surface Meeting Halls, got %+v", resp.Sources)
	}
}

func TestSearchHandler(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	req := httptest.NewRequest(http.MethodGet, "/v1/search?q=menu&limit=3", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Results []searchHit `json:"results"`
		Count   int         `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if payload.Count == 0 || len(payload.Results) == 0 {
		t.Fatalf("expected search hits for %q", "menu")
	}
	if payload.Results[0].Section != "Menu" {
		t.Fatalf("expected the aggregate menu doc on top, got %q", payload.Results[0].Section)
	}
}

func TestSearchHandlerRequiresQuery(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing query, got %d", rec.Code)
	}
}

func TestLogsHandler(t *testing.T) {
	srv := newTestServer(t, &mockProvider{})
	req := httptest.NewRequest(http.MethodGet, "/v1/logs", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
