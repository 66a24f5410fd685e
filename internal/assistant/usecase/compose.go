package usecase

import (
	"fmt"
	"strings"

	"studyflow/internal/assistant"
	"studyflow/internal/model"
)

// fallbackReply is persisted when the model failed and no action
// produced anything to confirm. The client still sees HTTP success.
const fallbackReply = "ただいまAIが混み合っています。少し時間をおいてもう一度お試しください。"

// degradedApology is appended when the reply was synthesized purely
// from action confirmations.
const degradedApology = "（AIの応答生成に失敗したため、実行結果のみお知らせします）"

var knowledgeTypeGlyphs = map[model.KnowledgeItemType]string{
	model.KnowledgeNote:     "📝",
	model.KnowledgeCode:     "💻",
	model.KnowledgeExercise: "✏️",
	model.KnowledgeResource: "🔗",
}

// confirmationSuffix renders a deterministic confirmation line for
// every persisted side effect of the request.
func confirmationSuffix(out assistant.SendMessageOutput) string {
	var b strings.Builder
	if out.CreatedTask != nil {
		fmt.Fprintf(&b, "\n\n✅ タスク「%s」を作成しました", out.CreatedTask.Title)
		if out.CreatedTask.Deadline != nil {
			fmt.Fprintf(&b, "（期限: %s）", out.CreatedTask.Deadline.Format("2006-01-02"))
		}
	}
	if out.KnowledgeCreation != nil && out.KnowledgeCreation.Success {
		for _, item := range out.KnowledgeCreation.Items {
			glyph := knowledgeTypeGlyphs[item.Type]
			if glyph == "" {
				glyph = "📄"
			}
			fmt.Fprintf(&b, "\n%s 「%s」を保存しました", glyph, item.Title)
		}
	}
	return b.String()
}

// degradedReply synthesizes a response purely from action outcomes when
// the model call failed but at least one action succeeded.
func degradedReply(out assistant.SendMessageOutput) string {
	var lines []string

	if out.CreatedTask != nil {
		line := fmt.Sprintf("✅ タスク「%s」を作成しました", out.CreatedTask.Title)
		if out.CreatedTask.Deadline != nil {
			line += fmt.Sprintf("（期限: %s）", out.CreatedTask.Deadline.Format("2006-01-02"))
		}
		lines = append(lines, line)
	}
	if out.TimetableSuggestion != nil {
		s := out.TimetableSuggestion
		lines = append(lines, fmt.Sprintf("📅 時間割の候補: %s（%s %s-%s）確認すると登録できます", s.Name, s.Day, s.StartTime, s.EndTime))
	}
	if len(out.KnowledgeItems) > 0 {
		line := fmt.Sprintf("🔍 ノートが%d件見つかりました:", len(out.KnowledgeItems))
		for _, item := range out.KnowledgeItems {
			line += fmt.Sprintf("\n- %s", item.Title)
		}
		lines = append(lines, line)
	}
	if out.KnowledgeCreation != nil && out.KnowledgeCreation.Success {
		for _, item := range out.KnowledgeCreation.Items {
			glyph := knowledgeTypeGlyphs[item.Type]
			if glyph == "" {
				glyph = "📄"
			}
			lines = append(lines, fmt.Sprintf("%s 「%s」を保存しました", glyph, item.Title))
		}
	}

	lines = append(lines, degradedApology)
	return strings.Join(lines, "\n")
}
