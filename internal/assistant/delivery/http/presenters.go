package http

import (
	"time"

	"studyflow/internal/assistant"
	"studyflow/internal/assistant/extract"
	"studyflow/internal/knowledge"
	"studyflow/internal/model"
)

// --- Request DTOs ---

type startReq struct {
	Title   string `json:"title"   binding:"omitempty,max=255"`
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

func (r startReq) validate() error { return nil }

func (r startReq) toInput() assistant.StartConversationInput {
	return assistant.StartConversationInput{
		Title:   r.Title,
		Message: r.Message,
	}
}

type sendReq struct {
	ConversationID string `json:"-"` // populated from URI param
	Message        string `json:"message" binding:"required,min=1,max=4000"`
}

func (r sendReq) validate() error { return nil }

func (r sendReq) toInput() assistant.SendMessageInput {
	return assistant.SendMessageInput{
		ConversationID: r.ConversationID,
		Message:        r.Message,
	}
}

// --- Response DTOs ---

type conversationResp struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newConversationResp(conv model.Conversation) conversationResp {
	return conversationResp{
		ID:            conv.ID,
		Title:         conv.Title,
		Status:        string(conv.Status),
		MessageCount:  conv.MessageCount,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
	}
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

type taskResp struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Priority      int        `json:"priority"`
	Status        string     `json:"status"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ScheduledTime string     `json:"scheduled_time,omitempty"`
	Subtasks      []string   `json:"subtasks,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

func newTaskResp(t model.Task) taskResp {
	subtasks := make([]string, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subtasks = append(subtasks, st.Title)
	}
	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tag.Name)
	}
	return taskResp{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      t.Priority,
		Status:        string(t.Status),
		Deadline:      t.Deadline,
		ScheduledTime: t.ScheduledTime,
		Subtasks:      subtasks,
		Tags:          tags,
	}
}

type timetableSuggestionResp struct {
	Name       string `json:"name"`
	Day        string `json:"day"`
	Period     int    `json:"period"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

func newTimetableSuggestionResp(s extract.TimetableIntent) timetableSuggestionResp {
	return timetableSuggestionResp{
		Name:       s.Name,
		Day:        s.Day,
		Period:     s.Period,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Room:       s.Room,
		Instructor: s.Instructor,
		Color:      s.Color,
		Icon:       s.Icon,
	}
}

type knowledgeItemResp struct {
	ID    string   `json:"id"`
	Type  string   `json:"type"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

func newKnowledgeItemResp(item model.KnowledgeItem) knowledgeItemResp {
	return knowledgeItemResp{
		ID:    item.ID,
		Type:  string(item.Type),
		Title: item.Title,
		Tags:  item.Tags,
	}
}

type knowledgeCreationResp struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Items      []string `json:"items,omitempty"`
}

func newKnowledgeCreationResp(result knowledge.CreateBundleResult) knowledgeCreationResp {
	categories := make([]string, 0, len(result.Categories))
	for _, c := range result.Categories {
		categories = append(categories, c.Name)
	}
	items := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, item.Title)
	}
	return knowledgeCreationResp{
		Success:    result.Success,
		Error:      result.Error,
		Categories: categories,
		Items:      items,
	}
}

type sendMessageResp struct {
	Conversation        *conversationResp        `json:"conversation,omitempty"`
	UserMessage         messageResp              `json:"user_message"`
	AssistantMessage    messageResp              `json:"assistant_message"`
	CreatedTask         *taskResp                `json:"created_task,omitempty"`
	TimetableSuggestion *timetableSuggestionResp `json:"timetable_suggestion,omitempty"`
	KnowledgeItems      []knowledgeItemResp      `json:"knowledge_items,omitempty"`
	KnowledgeCreation   *knowledgeCreationResp   `json:"knowledge_creation,omitempty"`
}

func (h *handler) newSendMessageResp(out assistant.SendMessageOutput) sendMessageResp {
	resp := sendMessageResp{
		UserMessage:      newMessageResp(out.UserMessage),
		AssistantMessage: newMessageResp(out.AssistantMessage),
	}
	if out.Conversation != nil {
		conv := newConversationResp(*out.Conversation)
		resp.Conversation = &conv
	}
	if out.CreatedTask != nil {
		t := newTaskResp(*out.CreatedTask)
		resp.CreatedTask = &t
	}
	if out.TimetableSuggestion != nil {
		s := newTimetableSuggestionResp(*out.TimetableSuggestion)
		resp.TimetableSuggestion = &s
	}
	for _, item := range out.KnowledgeItems {
		resp.KnowledgeItems = append(resp.KnowledgeItems, newKnowledgeItemResp(item))
	}
	if out.KnowledgeCreation != nil {
		kc := newKnowledgeCreationResp(*out.KnowledgeCreation)
		resp.KnowledgeCreation = &kc
	}
	return resp
}

type insightResp struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

func (h *handler) newInsightResp(out assistant.InsightOutput) insightResp {
	return insightResp{Content: out.Content, Model: out.Model}
}
