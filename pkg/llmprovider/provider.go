package llmprovider

import "context"

// Class distinguishes hosted APIs from locally served models. Invocation
// strategy (timeouts, token budgets, history depth) depends on it.
type Class string

const (
	ClassHosted Class = "hosted"
	ClassLocal  Class = "local"
)

// ChunkHandler receives incremental text chunks during streaming generation.
// Returning an error aborts the stream.
type ChunkHandler func(chunk string) error

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// GenerateStream streams the generation through onChunk and returns the
	// accumulated response after the terminal event
	GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "ollama")
	Name() string

	// Model returns the model being used
	Model() string

	// Class reports whether the provider is hosted or local
	Class() Class
}

// Message represents a conversation message
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      string
	FinishReason string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
