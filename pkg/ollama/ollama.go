package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ollamaImpl struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// newOllamaImpl creates a new Ollama implementation
func newOllamaImpl(cfg Config) *ollamaImpl {
	return &ollamaImpl{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a blocking chat request to the Ollama server.
func (o *ollamaImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	raw, err := o.callAPI(ctx, o.buildRequest(req, false))
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	var event chatEvent
	if err := json.NewDecoder(raw).Decode(&event); err != nil {
		return nil, fmt.Errorf("ollama: failed to decode response: %w", err)
	}

	return &Response{
		Content:      event.Message.Content,
		FinishReason: event.DoneReason,
		Usage: Usage{
			InputTokens:  event.PromptEvalCount,
			OutputTokens: event.EvalCount,
			TotalTokens:  event.PromptEvalCount + event.EvalCount,
		},
	}, nil
}

// GenerateStream consumes the NDJSON chat stream until the done event.
func (o *ollamaImpl) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	raw, err := o.callAPI(ctx, o.buildRequest(req, true))
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
		if line == "" {
			continue
		}

		var event chatEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			return nil, fmt.Errorf("ollama: failed to decode stream event: %w", err)
		}

		if event.Message.Content != "" {
			full.WriteString(event.Message.Content)
			if err := onChunk(event.Message.Content); err != nil {
				return nil, err
			}
		}

		if event.Done {
			out.FinishReason = event.DoneReason
			out.Usage = Usage{
				InputTokens:  event.PromptEvalCount,
				OutputTokens: event.EvalCount,
				TotalTokens:  event.PromptEvalCount + event.EvalCount,
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ollama: stream read failed: %w", err)
	}

	out.Content = full.String()
	return out, nil
}

// Model returns the model being used
func (o *ollamaImpl) Model() string {
	return o.model
}

func (o *ollamaImpl) buildRequest(req *Request, stream bool) chatRequest {
	messages := make([]Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, req.Messages...)

	out := chatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   stream,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		out.Options = &chatOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		}
	}
	return out
}

func (o *ollamaImpl) callAPI(ctx context.Context, req chatRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: API call failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("ollama: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp.Body, nil
}
