package assistant

import (
	"studyflow/internal/assistant/extract"
	"studyflow/internal/knowledge"
	"studyflow/internal/model"
)

// StartConversationInput creates a conversation and runs the pipeline
// on its first message.
type StartConversationInput struct {
	Title   string
	Message string
}

// SendMessageInput runs the pipeline on an existing conversation.
type SendMessageInput struct {
	ConversationID string
	Message        string
}

// SendMessageOutput is the pipeline result. Conversation is set only
// when the call created one. TimetableSuggestion is never persisted;
// the caller confirms it through the timetable endpoint.
type SendMessageOutput struct {
	Conversation        *model.Conversation
	UserMessage         model.Message
	AssistantMessage    model.Message
	CreatedTask         *model.Task
	TimetableSuggestion *extract.TimetableIntent
	KnowledgeItems      []model.KnowledgeItem
	KnowledgeCreation   *knowledge.CreateBundleResult
}

// Stream event types pushed over SSE.
const (
	StreamEventChunk = "chunk"
	StreamEventError = "error"
	StreamEventDone  = "done"
)

// StreamEvent is one server-push event of the streaming variant.
type StreamEvent struct {
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	MessageID   string `json:"message_id,omitempty"`
	FullContent string `json:"full_content,omitempty"`
}

// StreamHandler receives stream events in order. Returning an error
// stops the stream; the accumulated assistant message is then discarded.
type StreamHandler func(event StreamEvent) error

// InsightOutput is the result of the one-shot planning calls.
type InsightOutput struct {
	Content string
	Model   string
}
