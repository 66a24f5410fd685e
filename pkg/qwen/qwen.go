package qwen

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

type qwenImpl struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// newQwenImpl creates a new Qwen implementation
func newQwenImpl(cfg Config) *qwenImpl {
	return &qwenImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a generation request to Qwen API
func (q *qwenImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	raw, err := q.callAPI(ctx, q.transformRequest(req, false))
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	var openAIResp openAIResponse
	if err := json.NewDecoder(raw).Decode(&openAIResp); err != nil {
		return nil, fmt.Errorf("qwen: failed to decode response: %w", err)
	}

	return transformResponse(&openAIResp), nil
}

// GenerateStream streams the generation via SSE deltas.
func (q *qwenImpl) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	raw, err := q.callAPI(ctx, q.transformRequest(req, true))
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	return consumeStream(raw, onChunk)
}

// Model returns the model being used
func (q *qwenImpl) Model() string {
	return q.model
}

func (q *qwenImpl) callAPI(ctx context.Context, req openAIRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		q.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+q.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := q.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("qwen: API call failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("qwen: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp.Body, nil
}

func (q *qwenImpl) transformRequest(req *Request, stream bool) openAIRequest {
	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.SystemInstruction})
	}
	for _, msg := range req.Messages {
		messages = append(messages, openAIMessage{Role: msg.Role, Content: msg.Content})
	}

	return openAIRequest{
		Model:       q.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}
}

func transformResponse(resp *openAIResponse) *Response {
	out := &Response{}

	if resp.Usage != nil {
		out.Usage = Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.FinishReason = resp.Choices[0].FinishReason
	}

	return out
}

// consumeStream reads "data: {...}" SSE lines until "[DONE]", forwarding
// content deltas to onChunk and accumulating the full response.
func consumeStream(raw io.Reader, onChunk ChunkHandler) (*Response, error) {
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

		var event openAIStreamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("qwen: failed to decode stream event: %w", err)
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
		return nil, fmt.Errorf("qwen: stream read failed: %w", err)
	}

	out.Content = full.String()
	return out, nil
}
