package gemini

import "context"

// ChunkHandler receives incremental text chunks during streaming generation.
// Returning an error aborts the stream.
type ChunkHandler func(chunk string) error

// IGemini defines the interface for the Gemini API client.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent sends a blocking generation request to the Gemini API.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// GenerateStream streams the generation, invoking onChunk per text chunk,
	// and returns the accumulated response after the terminal event.
	GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new Gemini client with the given configuration.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
