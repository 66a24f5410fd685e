package qwen

import "context"

// ChunkHandler receives incremental text chunks during streaming generation.
// Returning an error aborts the stream.
type ChunkHandler func(chunk string) error

// IQwen defines the interface for the Qwen (DashScope) API client.
// Implementations are safe for concurrent use.
type IQwen interface {
	// GenerateContent sends a blocking generation request to the Qwen API.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// GenerateStream streams the generation, invoking onChunk per text delta,
	// and returns the accumulated response after the terminal event.
	GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new Qwen client with the given configuration.
func New(cfg Config) (IQwen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newQwenImpl(cfg), nil
}
