package classify

import (
	"strings"
	"testing"
	"time"
)

func TestInstantReply(t *testing.T) {
	now := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	t.Run("greetings get canned replies", func(t *testing.T) {
		for _, text := range []string{"こんにちは", "hi", "Hello!", "xin chào", "おはようございます"} {
			if _, ok := InstantReply(text, now); !ok {
				t.Errorf("expected instant reply for %q", text)
			}
		}
	})

	t.Run("time question answers with current time", func(t *testing.T) {
		reply, ok := InstantReply("今何時？", now)
		if !ok {
			t.Fatal("expected instant reply")
		}
		if !strings.Contains(reply, "14:30") {
			t.Errorf("expected current time in reply, got %q", reply)
		}
	})

	t.Run("important intent disables the gate", func(t *testing.T) {
		// Greeting attached to a real request must fall through.
		cases := []string{
			"hi, add a task to study at 10",
			"こんにちは、明日のタスクを追加して",
			"hello, what classes do I have on monday?",
			"おはよう、10時に勉強する",
		}
		for _, text := range cases {
			if reply, ok := InstantReply(text, now); ok {
				t.Errorf("expected gate disabled for %q, got reply %q", text, reply)
			}
		}
	})

	t.Run("ok is not a recognized greeting", func(t *testing.T) {
		if reply, ok := InstantReply("ok", now); ok {
			t.Errorf("expected no instant reply for ok, got %q", reply)
		}
	})

	t.Run("task mentioning a time is not a time question", func(t *testing.T) {
		if _, ok := InstantReply("10時に宿題をする", now); ok {
			t.Error("expected pipeline for a timed task, not a canned time reply")
		}
	})

	t.Run("long message opening with greeting falls through", func(t *testing.T) {
		if _, ok := InstantReply("こんにちは。昨日の授業の内容について詳しく聞きたいのですが", now); ok {
			t.Error("expected long message to reach the pipeline")
		}
	})
}

func TestDetectTriggers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Triggers
	}{
		{
			name: "task phrasing",
			text: "明日までに宿題のタスクを追加して",
			want: Triggers{Task: true},
		},
		{
			name: "timetable phrasing",
			text: "月曜の授業は何ですか",
			want: Triggers{Timetable: true},
		},
		{
			name: "knowledge query phrasing",
			text: "アルゴリズムのノートを見せて",
			want: Triggers{KnowledgeQuery: true},
		},
		{
			name: "knowledge creation phrasing",
			text: "これをメモして: 二分探索はO(log n)",
			want: Triggers{KnowledgeCreate: true},
		},
		{
			name: "english task",
			text: "add a todo for the physics assignment",
			want: Triggers{Task: true},
		},
		{
			name: "vietnamese task",
			text: "thêm việc làm bài tập toán",
			want: Triggers{Task: true},
		},
		{
			name: "no triggers",
			text: "ありがとう",
			want: Triggers{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTriggers(tt.text)
			if got.Task != tt.want.Task || got.Timetable != tt.want.Timetable ||
				got.KnowledgeQuery != tt.want.KnowledgeQuery || got.KnowledgeCreate != tt.want.KnowledgeCreate {
				t.Errorf("DetectTriggers(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}

	t.Run("multiple triggers may fire at once", func(t *testing.T) {
		got := DetectTriggers("宿題のタスクを追加して、月曜の授業もメモして")
		if !got.Task || !got.Timetable || !got.KnowledgeCreate {
			t.Errorf("expected task, timetable and knowledge-create triggers, got %+v", got)
		}
	})
}

func TestIsLightweight(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"short thanks", "ありがとう", true},
		{"short english", "thanks!", true},
		{"short with task vocabulary", "タスク見せて", false},
		{"long message", strings.Repeat("長い話です。", 10), false},
		{"short timed action", "10時に勉強する", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLightweight(tt.text, DefaultLightweightThreshold); got != tt.want {
				t.Errorf("IsLightweight(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
