package deepseek

import "context"

// IDeepSeek defines the interface for the DeepSeek API client.
type IDeepSeek interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error)
	Model() string
}
