package llmprovider

import (
	"context"

	"studyflow/pkg/deepseek"
	"studyflow/pkg/gemini"
	"studyflow/pkg/ollama"
	"studyflow/pkg/qwen"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toGeminiMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	resp, err := a.client.GenerateStream(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toGeminiMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}, gemini.ChunkHandler(onChunk))
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.client.Model() }
func (a *GeminiAdapter) Class() Class  { return ClassHosted }

func toGeminiMessages(messages []Message) []gemini.Message {
	out := make([]gemini.Message, len(messages))
	for i, m := range messages {
		out[i] = gemini.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// QwenAdapter adapts pkg/qwen to the Provider interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &qwen.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toQwenMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *QwenAdapter) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	resp, err := a.client.GenerateStream(ctx, &qwen.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toQwenMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}, qwen.ChunkHandler(onChunk))
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *QwenAdapter) Name() string  { return "qwen" }
func (a *QwenAdapter) Model() string { return a.client.Model() }
func (a *QwenAdapter) Class() Class  { return ClassHosted }

func toQwenMessages(messages []Message) []qwen.Message {
	out := make([]qwen.Message, len(messages))
	for i, m := range messages {
		out[i] = qwen.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &deepseek.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toDeepSeekMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *DeepSeekAdapter) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	resp, err := a.client.GenerateStream(ctx, &deepseek.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toDeepSeekMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}, deepseek.ChunkHandler(onChunk))
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *DeepSeekAdapter) Name() string  { return "deepseek" }
func (a *DeepSeekAdapter) Model() string { return a.client.Model() }
func (a *DeepSeekAdapter) Class() Class  { return ClassHosted }

func toDeepSeekMessages(messages []Message) []deepseek.Message {
	out := make([]deepseek.Message, len(messages))
	for i, m := range messages {
		out[i] = deepseek.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// OllamaAdapter adapts pkg/ollama to the Provider interface. Ollama serves
// models locally, so it reports ClassLocal.
type OllamaAdapter struct {
	client ollama.IOllama
}

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(client ollama.IOllama) *OllamaAdapter {
	return &OllamaAdapter{client: client}
}

func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &ollama.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toOllamaMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *OllamaAdapter) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	resp, err := a.client.GenerateStream(ctx, &ollama.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          toOllamaMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}, ollama.ChunkHandler(onChunk))
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *OllamaAdapter) Name() string  { return "ollama" }
func (a *OllamaAdapter) Model() string { return a.client.Model() }
func (a *OllamaAdapter) Class() Class  { return ClassLocal }

func toOllamaMessages(messages []Message) []ollama.Message {
	out := make([]ollama.Message, len(messages))
	for i, m := range messages {
		out[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
