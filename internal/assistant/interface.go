package assistant

import (
	"context"

	"studyflow/internal/model"
)

// UseCase defines the conversational pipeline interface.
type UseCase interface {
	// StartConversation creates a conversation and runs the full
	// multi-intent pipeline on its first message.
	StartConversation(ctx context.Context, sc model.Scope, input StartConversationInput) (SendMessageOutput, error)

	// SendMessage runs the plain pipeline (gate, lightweight check,
	// task extraction) on an existing conversation.
	SendMessage(ctx context.Context, sc model.Scope, input SendMessageInput) (SendMessageOutput, error)

	// SendMessageContextAware runs the full multi-intent pipeline
	// including timetable suggestions and knowledge search/creation.
	SendMessageContextAware(ctx context.Context, sc model.Scope, input SendMessageInput) (SendMessageOutput, error)

	// StreamMessage runs the pipeline with a streaming model call,
	// pushing chunk events through emit. The assistant message persists
	// only after the terminal event; a broken emit aborts persistence.
	StreamMessage(ctx context.Context, sc model.Scope, input SendMessageInput, emit StreamHandler) error

	// DailyPlan builds today's study plan from assembled context.
	DailyPlan(ctx context.Context, sc model.Scope) (InsightOutput, error)

	// WeeklyInsights summarizes the week's workload from assembled context.
	WeeklyInsights(ctx context.Context, sc model.Scope) (InsightOutput, error)
}
