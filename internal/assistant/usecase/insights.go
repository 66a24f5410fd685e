package usecase

import (
	"context"

	"studyflow/internal/assistant"
	"studyflow/internal/model"
	"studyflow/pkg/llmprovider"
)

const dailyPlanPrompt = `上記の未完了タスクと今日の時間割をもとに、今日の学習計画を立ててください。授業の空き時間と優先度・期限を考慮し、時間帯つきの簡潔な箇条書きで答えてください。`

const weeklyInsightsPrompt = `上記のタスクと週間時間割をもとに、今週の学習状況を振り返ってください。負荷の高い曜日、期限が近いタスク、改善の提案を簡潔にまとめてください。`

// DailyPlan builds today's study plan from the assembled context.
func (uc *implUseCase) DailyPlan(ctx context.Context, sc model.Scope) (assistant.InsightOutput, error) {
	return uc.insight(ctx, sc, dailyPlanPrompt)
}

// WeeklyInsights summarizes the week's workload from the assembled context.
func (uc *implUseCase) WeeklyInsights(ctx context.Context, sc model.Scope) (assistant.InsightOutput, error) {
	return uc.insight(ctx, sc, weeklyInsightsPrompt)
}

// insight is a one-shot, non-conversational call: full context, full
// token budget, no history. A model failure here has nothing to recover
// with, so it surfaces as unavailability.
func (uc *implUseCase) insight(ctx context.Context, sc model.Scope, prompt string) (assistant.InsightOutput, error) {
	instruction := assistantSystemPrompt
	if studyContext := uc.assembleContext(ctx, sc, nil); studyContext != "" {
		instruction += "\n\n" + studyContext
	}

	ctx, cancel := context.WithTimeout(ctx, uc.modelTimeout())
	defer cancel()

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: instruction,
		Messages:          []llmprovider.Message{{Role: "user", Content: prompt}},
		Temperature:       0.7,
		MaxTokens:         uc.opts.FullMaxTokens,
	})
	if err != nil {
		uc.l.Warnf(ctx, "assistant.usecase.insight: %v", err)
		return assistant.InsightOutput{}, assistant.ErrModelUnavailable
	}
	return assistant.InsightOutput{Content: resp.Content, Model: resp.ModelName}, nil
}
