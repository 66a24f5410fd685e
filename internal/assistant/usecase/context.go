package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyflow/internal/model"
	"studyflow/internal/task"
)

const assistantSystemPrompt = `あなたは学生の学習アシスタントです。タスク管理、時間割、ノートの相談に日本語・英語・ベトナム語で応じます。ユーザーのメッセージと同じ言語で、簡潔かつ親しみやすく答えてください。`

// assembleContext builds one textual payload per request: open tasks,
// the entire week's timetable grouped by day, today's day name and any
// knowledge search hits with long fields truncated to the character
// budget. Assembly failures degrade to a smaller context, never an
// error.
func (uc *implUseCase) assembleContext(ctx context.Context, sc model.Scope, knowledgeHits []model.KnowledgeItem) string {
	now := time.Now().In(uc.dates.Location())

	var b strings.Builder
	fmt.Fprintf(&b, "今日: %s (%s)\n", now.Format("2006-01-02"), strings.ToLower(now.Weekday().String()))

	uc.writeOpenTasks(ctx, sc, &b)
	uc.writeWeekTimetable(ctx, sc, &b)
	writeKnowledgeHits(&b, knowledgeHits, uc.opts.KnowledgeCharBudget)

	return strings.TrimRight(b.String(), "\n")
}

func (uc *implUseCase) writeOpenTasks(ctx context.Context, sc model.Scope, b *strings.Builder) {
	tasks, err := uc.taskUC.ListOpen(ctx, sc, task.ListOpenInput{Limit: uc.opts.OpenTaskLimit})
	if err != nil {
		uc.l.Warnf(ctx, "assistant.usecase.assembleContext.tasks: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}
	b.WriteString("\n未完了タスク:\n")
	for _, t := range tasks {
		fmt.Fprintf(b, "- %s (優先度%d", t.Title, t.Priority)
		if t.Deadline != nil {
			fmt.Fprintf(b, ", 期限%s", t.Deadline.Format("2006-01-02"))
		}
		if t.ScheduledTime != "" {
			fmt.Fprintf(b, ", %s開始", t.ScheduledTime[:5])
		}
		b.WriteString(")\n")
	}
}

func (uc *implUseCase) writeWeekTimetable(ctx context.Context, sc model.Scope, b *strings.Builder) {
	week, err := uc.timetableUC.Week(ctx, sc)
	if err != nil {
		uc.l.Warnf(ctx, "assistant.usecase.assembleContext.timetable: %v", err)
		return
	}
	any := false
	for _, day := range model.WeekDays {
		if len(week.Days[day]) > 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}
	b.WriteString("\n週間時間割:\n")
	for _, day := range model.WeekDays {
		classes := week.Days[day]
		if len(classes) == 0 {
			continue
		}
		fmt.Fprintf(b, "%s:\n", day)
		for _, c := range classes {
			fmt.Fprintf(b, "- %d限 %s (%s-%s", c.Period, c.Name, c.StartTime, c.EndTime)
			if c.Room != "" {
				fmt.Fprintf(b, ", %s", c.Room)
			}
			b.WriteString(")\n")
		}
	}
}

// writeKnowledgeHits appends matched items with content and answer
// fields truncated so the whole section stays within charBudget.
func writeKnowledgeHits(b *strings.Builder, items []model.KnowledgeItem, charBudget int) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n関連ノート:\n")
	perItem := charBudget / len(items)
	for _, item := range items {
		fmt.Fprintf(b, "[%s] %s\n", item.Type, item.Title)
		if item.Content != "" {
			fmt.Fprintf(b, "%s\n", truncateRunes(item.Content, perItem))
		}
		if item.Question != "" {
			fmt.Fprintf(b, "Q: %s\n", item.Question)
		}
		if item.Answer != "" {
			fmt.Fprintf(b, "A: %s\n", truncateRunes(item.Answer, perItem))
		}
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
