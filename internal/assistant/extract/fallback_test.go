package extract

import (
	"strings"
	"testing"
	"time"

	"studyflow/internal/model"
	"studyflow/pkg/datemath"
)

func tokyoParser(t *testing.T) *datemath.Parser {
	t.Helper()
	p, err := datemath.NewParser("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	return p
}

func refFriday(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return time.Date(2025, 1, 10, 12, 0, 0, 0, loc) // Friday
}

func TestFallbackTask(t *testing.T) {
	parser := tokyoParser(t)
	ref := refFriday(t)

	t.Run("homework tomorrow at fifteen", func(t *testing.T) {
		intent := FallbackTask("明日15時に宿題のタスクを作って", ref, parser)

		if got := intent.Deadline.Format("2006-01-02"); got != "2025-01-11" {
			t.Errorf("expected deadline 2025-01-11, got %s", got)
		}
		if intent.ScheduledTime != "15:00:00" {
			t.Errorf("expected scheduled 15:00:00, got %q", intent.ScheduledTime)
		}
		if !strings.Contains(intent.Title, "宿題") {
			t.Errorf("expected title to contain 宿題, got %q", intent.Title)
		}
		if strings.Contains(intent.Title, "明日") || strings.Contains(intent.Title, "15時") {
			t.Errorf("expected date and time stripped from title, got %q", intent.Title)
		}
		if intent.Priority != model.PriorityMedium {
			t.Errorf("expected default priority, got %d", intent.Priority)
		}
	})

	t.Run("duration becomes estimated minutes", func(t *testing.T) {
		intent := FallbackTask("2時間勉強するタスクを追加して", ref, parser)
		if intent.EstimatedMinutes != 120 {
			t.Errorf("expected 120 minutes, got %d", intent.EstimatedMinutes)
		}
		if intent.ScheduledTime != "" {
			t.Errorf("expected no scheduled time from a duration, got %q", intent.ScheduledTime)
		}
	})

	t.Run("minute duration", func(t *testing.T) {
		intent := FallbackTask("30分で単語帳を復習するタスク", ref, parser)
		if intent.EstimatedMinutes != 30 {
			t.Errorf("expected 30 minutes, got %d", intent.EstimatedMinutes)
		}
	})

	t.Run("deadline defaults to today", func(t *testing.T) {
		intent := FallbackTask("レポートを書くタスクを追加して", ref, parser)
		if got := intent.Deadline.Format("2006-01-02"); got != "2025-01-10" {
			t.Errorf("expected today as default deadline, got %s", got)
		}
	})

	t.Run("weekday deadline", func(t *testing.T) {
		intent := FallbackTask("月曜日までにレポートのタスクを作って", ref, parser)
		if got := intent.Deadline.Format("2006-01-02"); got != "2025-01-13" {
			t.Errorf("expected next Monday 2025-01-13, got %s", got)
		}
		if strings.Contains(intent.Title, "月曜") {
			t.Errorf("expected weekday stripped, got %q", intent.Title)
		}
	})

	t.Run("never degenerates to empty title", func(t *testing.T) {
		inputs := []string{
			"明日15時に宿題のタスクを作って",
			"タスクを作って",
			"task",
			"明日",
			"a",
			"今日中にやる",
		}
		for _, input := range inputs {
			intent := FallbackTask(input, ref, parser)
			if strings.TrimSpace(intent.Title) == "" {
				t.Errorf("empty title for input %q", input)
			}
		}
	})

	t.Run("over-stripped message falls back to original", func(t *testing.T) {
		intent := FallbackTask("明日タスクを作って", ref, parser)
		if intent.Title != "明日タスクを作って" {
			t.Errorf("expected original message as title, got %q", intent.Title)
		}
	})

	t.Run("english task with colon time", func(t *testing.T) {
		intent := FallbackTask("add a task to review notes at 18:30 tomorrow", ref, parser)
		if intent.ScheduledTime != "18:30:00" {
			t.Errorf("expected scheduled 18:30:00, got %q", intent.ScheduledTime)
		}
		if got := intent.Deadline.Format("2006-01-02"); got != "2025-01-11" {
			t.Errorf("expected tomorrow, got %s", got)
		}
		if !strings.Contains(intent.Title, "review notes") {
			t.Errorf("expected title to keep the action, got %q", intent.Title)
		}
	})
}
