package deepseek

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChunkHandler receives incremental text chunks during streaming generation.
// Returning an error aborts the stream.
type ChunkHandler func(chunk string) error

// Config holds client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a normalized generation request.
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Response is a normalized generation response.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type apiRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type apiResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Client implements IDeepSeek.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a new DeepSeek client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateContent sends a request to DeepSeek API
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	raw, err := c.callAPI(ctx, c.buildRequest(req, false))
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	var result apiResponse
	if err := json.NewDecoder(raw).Decode(&result); err != nil {
		return nil, fmt.Errorf("deepseek: failed to decode response: %w", err)
	}

	out := &Response{}
	if result.Usage != nil {
		out.Usage = Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
			TotalTokens:  result.Usage.TotalTokens,
		}
	}
	if len(result.Choices) > 0 {
		out.Content = result.Choices[0].Message.Content
		out.FinishReason = result.Choices[0].FinishReason
	}
	return out, nil
}

// GenerateStream streams the generation via SSE deltas.
func (c *Client) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	raw, err := c.callAPI(ctx, c.buildRequest(req, true))
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	var full strings.Builder
	out := &Response{}

	scanner := bufio.NewScanner(raw)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("deepseek: failed to decode stream event: %w", err)
		}
		if len(event.Choices) == 0 {
			continue
		}

		if delta := event.Choices[0].Delta.Content; delta != "" {
			full.WriteString(delta)
			if err := onChunk(delta); err != nil {
				return nil, err
			}
		}
		if fr := event.Choices[0].FinishReason; fr != "" {
			out.FinishReason = fr
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("deepseek: stream read failed: %w", err)
	}

	out.Content = full.String()
	return out, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

func (c *Client) buildRequest(req *Request, stream bool) apiRequest {
	messages := make([]Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, req.Messages...)

	return apiRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}
}

func (c *Client) callAPI(ctx context.Context, req apiRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("deepseek: API call failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("deepseek: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp.Body, nil
}
