package ollama

import "context"

// ChunkHandler receives incremental text chunks during streaming generation.
// Returning an error aborts the stream.
type ChunkHandler func(chunk string) error

// IOllama defines the interface for a local Ollama server client.
// Implementations are safe for concurrent use.
type IOllama interface {
	// GenerateContent sends a blocking chat request to the Ollama server.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// GenerateStream streams the chat, invoking onChunk per message fragment,
	// and returns the accumulated response after the final event.
	GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new Ollama client with the given configuration.
func New(cfg Config) (IOllama, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOllamaImpl(cfg), nil
}
