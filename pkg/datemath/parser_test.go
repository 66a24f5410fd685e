package datemath

import (
	"testing"
	"time"
)

// Reference: Friday 2025-01-10 in Asia/Tokyo.
func refFriday(t *testing.T) (*Parser, time.Time) {
	t.Helper()
	p, err := NewParser("Asia/Tokyo")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p, time.Date(2025, 1, 10, 12, 0, 0, 0, p.Location())
}

func TestInferExplicitDates(t *testing.T) {
	p, ref := refFriday(t)

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"ISO dash", "レポートは2025-02-14まで", "2025-02-14", true},
		{"ISO slash", "due 2025/3/5 ok?", "2025-03-05", true},
		{"Japanese month-day", "1月11日に提出", "2025-01-11", true},
		{"invalid Feb 30", "2025-02-30に", "", false},
		{"invalid 13月", "13月1日", "", false},
		{"no date", "just words", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Infer(tt.text, ref)
			if ok != tt.ok {
				t.Fatalf("Infer(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("Infer(%q) = %s, want %s", tt.text, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestInferRelativeKeywords(t *testing.T) {
	p, ref := refFriday(t)

	tests := []struct {
		text string
		want string
	}{
		{"明日やる", "2025-01-11"},
		{"明後日までに", "2025-01-12"},
		{"今日のタスク", "2025-01-10"},
		{"do it tomorrow", "2025-01-11"},
		{"the day after tomorrow works", "2025-01-12"},
		{"finish today", "2025-01-10"},
		{"làm vào ngày mai", "2025-01-11"},
		{"hôm nay phải xong", "2025-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := p.Infer(tt.text, ref)
			if !ok {
				t.Fatalf("Infer(%q) did not match", tt.text)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("Infer(%q) = %s, want %s", tt.text, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestInferWeekdays(t *testing.T) {
	p, ref := refFriday(t) // 2025-01-10 is a Friday

	tests := []struct {
		text string
		want string
	}{
		{"月曜日に会議", "2025-01-13"},      // nearest upcoming Monday
		{"来週の月曜日に会議", "2025-01-20"},   // Monday of the following week
		{"金曜日に", "2025-01-10"},        // same day counts as today
		{"来週の金曜日に", "2025-01-17"},     // today + 7
		{"see you on sunday", "2025-01-12"},
		{"next week on tuesday", "2025-01-21"},
		{"thứ 2 tuần sau", "2025-01-20"},
		{"gặp nhau chủ nhật", "2025-01-12"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := p.Infer(tt.text, ref)
			if !ok {
				t.Fatalf("Infer(%q) did not match", tt.text)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("Infer(%q) = %s, want %s", tt.text, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestInferDeterminism(t *testing.T) {
	p, ref := refFriday(t)

	first, ok := p.Infer("来週の月曜日", ref)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 5; i++ {
		got, _ := p.Infer("来週の月曜日", ref)
		if !got.Equal(first) {
			t.Fatalf("non-deterministic result: %v vs %v", got, first)
		}
	}
}

func TestInferCascadeOrder(t *testing.T) {
	p, ref := refFriday(t)

	// Explicit date wins over a weekday mentioned in the same text.
	got, ok := p.Infer("2025-02-14 金曜日", ref)
	if !ok || got.Format("2006-01-02") != "2025-02-14" {
		t.Errorf("explicit date should win, got %v ok=%v", got, ok)
	}
}

func TestStartEndOfDay(t *testing.T) {
	p, ref := refFriday(t)

	start := p.StartOfDay(ref)
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}
	end := p.EndOfDay(start)
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("EndOfDay = %v, want 23:59:59", end)
	}
}
