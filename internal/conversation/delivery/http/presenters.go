package http

import (
	"time"

	"studyflow/internal/model"
)

// --- Response DTOs ---

type conversationResp struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func newConversationResp(conv model.Conversation) conversationResp {
	return conversationResp{
		ID:            conv.ID,
		Title:         conv.Title,
		Status:        string(conv.Status),
		MessageCount:  conv.MessageCount,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
}

type listResp struct {
	Conversations []conversationResp `json:"conversations"`
}

func (h *handler) newListResp(conversations []model.Conversation) listResp {
	out := make([]conversationResp, len(conversations))
	for i, conv := range conversations {
		out[i] = newConversationResp(conv)
	}
	return listResp{Conversations: out}
}

type messageResp struct {
	ID        string                 `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func newMessageResp(msg model.Message) messageResp {
	return messageResp{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Metadata:  msg.Metadata,
		CreatedAt: msg.CreatedAt,
	}
}

type messagesResp struct {
	Messages []messageResp `json:"messages"`
}

func (h *handler) newMessagesResp(messages []model.Message) messagesResp {
	out := make([]messageResp, len(messages))
	for i, msg := range messages {
		out[i] = newMessageResp(msg)
	}
	return messagesResp{Messages: out}
}
