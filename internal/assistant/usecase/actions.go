package usecase

import (
	"context"
	"time"

	"studyflow/internal/assistant"
	"studyflow/internal/assistant/extract"
	"studyflow/internal/knowledge"
	"studyflow/internal/model"
	"studyflow/internal/task"
)

// executeActions runs the side effect of every detected intent. Each
// branch fails independently: an error is logged and excluded from the
// confirmations without touching its siblings or the transaction.
// Returns whether at least one branch produced something to confirm.
func (uc *implUseCase) executeActions(ctx context.Context, sc model.Scope, intents extract.Intents, out *assistant.SendMessageOutput) bool {
	acted := false

	if intents.Task != nil {
		created, err := uc.taskUC.CreateWithDetails(ctx, sc, taskInputFromIntent(*intents.Task, uc.dates.StartOfDay(time.Now().In(uc.dates.Location()))))
		if err != nil {
			uc.l.Warnf(ctx, "assistant.usecase.executeActions.task: %v", err)
		} else {
			out.CreatedTask = &created
			acted = true
		}
	}

	if intents.Timetable != nil {
		// Suggestion only; persistence happens on explicit confirm.
		suggestion := *intents.Timetable
		out.TimetableSuggestion = &suggestion
		acted = true
	}

	if intents.KnowledgeQuery != nil {
		items, err := uc.knowledgeUC.Search(ctx, sc, knowledge.SearchInput{
			ItemType:       intents.KnowledgeQuery.ItemType,
			Keywords:       intents.KnowledgeQuery.Keywords,
			LearningPathID: intents.KnowledgeQuery.LearningPathID,
			CategoryID:     intents.KnowledgeQuery.CategoryID,
			Limit:          uc.knowledgeLimit(),
		})
		if err != nil {
			uc.l.Warnf(ctx, "assistant.usecase.executeActions.knowledgeQuery: %v", err)
		} else {
			out.KnowledgeItems = items
			if len(items) > 0 {
				acted = true
			}
		}
	}

	if intents.KnowledgeCreate != nil {
		result := uc.knowledgeUC.CreateBundle(ctx, sc, bundleInputFromIntent(*intents.KnowledgeCreate))
		out.KnowledgeCreation = &result
		if result.Success {
			acted = true
		} else {
			uc.l.Warnf(ctx, "assistant.usecase.executeActions.knowledgeCreate: %s", result.Error)
		}
	}

	return acted
}

func taskInputFromIntent(intent extract.TaskIntent, defaultDeadline time.Time) task.CreateInput {
	deadline := intent.Deadline
	if deadline.IsZero() {
		deadline = defaultDeadline
	}
	subtasks := make([]task.SubtaskInput, 0, len(intent.Subtasks))
	for _, st := range intent.Subtasks {
		subtasks = append(subtasks, task.SubtaskInput{
			Title:            st.Title,
			EstimatedMinutes: st.EstimatedMinutes,
		})
	}
	return task.CreateInput{
		Title:            intent.Title,
		Description:      intent.Description,
		Priority:         intent.Priority,
		EstimatedMinutes: intent.EstimatedMinutes,
		Deadline:         &deadline,
		ScheduledTime:    intent.ScheduledTime,
		Tags:             intent.Tags,
		Subtasks:         subtasks,
	}
}

func bundleInputFromIntent(intent extract.KnowledgeCreationIntent) knowledge.CreateBundleInput {
	categories := make([]knowledge.CategorySpec, 0, len(intent.Categories))
	for _, c := range intent.Categories {
		categories = append(categories, knowledge.CategorySpec{Name: c.Name})
	}
	items := make([]knowledge.ItemSpec, 0, len(intent.Items))
	for _, it := range intent.Items {
		items = append(items, knowledge.ItemSpec{
			Type:         model.KnowledgeItemType(it.Type),
			Title:        it.Title,
			Content:      it.Content,
			Question:     it.Question,
			Answer:       it.Answer,
			CategoryName: it.CategoryName,
			Tags:         it.Tags,
		})
	}
	return knowledge.CreateBundleInput{Categories: categories, Items: items}
}
