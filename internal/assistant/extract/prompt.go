package extract

import (
	"fmt"
	"strings"

	"studyflow/internal/model"
)

const extractionSystemPrompt = `You extract structured intents from chat messages in Japanese, English or Vietnamese.
Respond with JSON only, no prose, no markdown fences.
Omit a field entirely when the message gives no value for it.`

func historyBlock(history []model.Message) string {
	if len(history) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Recent conversation:\n")
	for _, m := range history {
		sb.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
	}
	return sb.String()
}

// buildQuickParsePrompt asks for every triggered intent in one call.
func buildQuickParsePrompt(message, nowStr string, wantTask, wantTimetable, wantQuery, wantCreate bool, history []model.Message) string {
	var sections []string
	if wantTask {
		sections = append(sections, `"task": {"title": string, "description": string, "priority": "low"|"medium"|"high", "deadline": "YYYY-MM-DD", "scheduled_time": "HH:MM:SS", "estimated_minutes": int, "tags": [string], "subtasks": [{"title": string, "estimated_minutes": int}]} or null`)
	}
	if wantTimetable {
		sections = append(sections, `"timetable": {"name": string, "day": "monday".."sunday", "period": int, "start_time": "HH:MM", "end_time": "HH:MM", "room": string, "instructor": string} or null`)
	}
	if wantQuery {
		sections = append(sections, `"knowledge_query": {"item_type": "note"|"code"|"exercise"|"resource"|"any", "keywords": [string]} or null`)
	}
	if wantCreate {
		sections = append(sections, `"knowledge_create": {"categories": [{"name": string}], "items": [{"type": "note"|"code"|"exercise"|"resource", "title": string, "content": string, "question": string, "answer": string, "category_name": string, "tags": [string]}]} or null`)
	}

	return fmt.Sprintf(`Current date-time: %s
%s
Message: %q

Return one JSON object with exactly these keys:
{%s}

Use null for any intent the message does not express. Resolve relative dates against the current date-time.`,
		nowStr, historyBlock(history), message, strings.Join(sections, ", "))
}

func buildTaskPrompt(message, nowStr string, history []model.Message) string {
	return fmt.Sprintf(`Current date-time: %s
%s
Message: %q

If the message asks to create a task, return:
{"title": string, "description": string, "priority": "low"|"medium"|"high", "deadline": "YYYY-MM-DD", "scheduled_time": "HH:MM:SS", "estimated_minutes": int, "tags": [string], "subtasks": [{"title": string, "estimated_minutes": int}]}
Otherwise return null. Resolve relative dates against the current date-time.`, nowStr, historyBlock(history), message)
}

func buildTimetablePrompt(message, nowStr string, history []model.Message) string {
	return fmt.Sprintf(`Current date-time: %s
%s
Message: %q

If the message describes a recurring class or timetable entry, return:
{"name": string, "day": "monday".."sunday", "period": int, "start_time": "HH:MM", "end_time": "HH:MM", "room": string, "instructor": string}
Otherwise return null.`, nowStr, historyBlock(history), message)
}

func buildKnowledgeQueryPrompt(message, nowStr string, history []model.Message) string {
	return fmt.Sprintf(`Current date-time: %s
%s
Message: %q

If the message asks to search saved notes or knowledge, return:
{"item_type": "note"|"code"|"exercise"|"resource"|"any", "keywords": [string]}
Otherwise return null.`, nowStr, historyBlock(history), message)
}

func buildKnowledgeCreatePrompt(message, nowStr string, history []model.Message) string {
	return fmt.Sprintf(`Current date-time: %s
%s
Message: %q

If the message asks to save notes, snippets, flashcards or resources, return:
{"categories": [{"name": string}], "items": [{"type": "note"|"code"|"exercise"|"resource", "title": string, "content": string, "question": string, "answer": string, "category_name": string, "tags": [string]}]}
Otherwise return null.`, nowStr, historyBlock(history), message)
}
