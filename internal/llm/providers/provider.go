package providers

import "context"

// Message is a single turn handed to the generation service.
type Message struct {
	Role    string
	Content string
}

// Provider is the minimal contract with the external generation service:
// render messages in, generated text out. Failures are degraded by the
// caller, never surfaced to the end user.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
