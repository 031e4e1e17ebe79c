package api

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message        string     `json:"message"`
	ConversationID string     `json:"conversation_id,omitempty"`
	History        []chatTurn `json:"history,omitempty"`
}

type chatSource struct {
	ID      string `json:"id"`
	Section string `json:"section"`
}

type chatResponse struct {
	Reply          string       `json:"reply"`
	Sources        []chatSource `json:"sources"`
	ConversationID string       `json:"conversation_id"`
	Provider       string       `json:"provider"`
	Cached         bool         `json:"cached"`
}

type searchHit struct {
	ID      string  `json:"id"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}
