package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"studyflow/internal/model"
	"studyflow/pkg/datemath"
)

// minTitleRunes guards against stripping reducing the title to noise;
// below it the whole original message becomes the title.
const minTitleRunes = 2

var (
	reClockJa     = regexp.MustCompile(`(\d{1,2})時(半)?(?:(\d{1,2})分)?`)
	reClockColon  = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	reDurationHrs = regexp.MustCompile(`(\d{1,2})時間半?|(\d{1,2})\s*(?:hours?|hrs?|giờ)`)
	reDurationMin = regexp.MustCompile(`(\d{1,3})分|(\d{1,3})\s*(?:minutes?|mins?|phút)`)

	// Substrings stripped from the message to leave the task title.
	// Duration phrases run before bare clock times so 2時間 is not
	// misread as 2時.
	stripPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
		regexp.MustCompile(`\d{1,2}月\d{1,2}日`),
		regexp.MustCompile(`(?i)明後日|明日|今日|day after tomorrow|tomorrow|today|ngày kia|ngày mai|hôm nay`),
		regexp.MustCompile(`(?i)来週の?|next week|tuần (?:sau|tới)`),
		regexp.MustCompile(`(?i)[月火水木金土日]曜日?|monday|tuesday|wednesday|thursday|friday|saturday|sunday|thứ\s*(?:hai|ba|tư|năm|sáu|bảy|[2-7])|chủ\s*nhật`),
		regexp.MustCompile(`\d{1,2}時間半?|\d{1,3}分間?`),
		regexp.MustCompile(`(?i)\d{1,2}\s*(?:hours?|hrs?|minutes?|mins?|giờ|phút)`),
		regexp.MustCompile(`\d{1,2}時半?`),
		regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`),
		regexp.MustCompile(`(?i)までに|by\s|trước\s`),
		regexp.MustCompile(`(?i)のタスクを?(?:作って|追加して)|タスクを?(?:作って|追加して)|タスクにして|を?作って|を?追加して|タスク|やること`),
		regexp.MustCompile(`(?i)ください|下さい|お願いします?|してね?$`),
		regexp.MustCompile(`(?i)add (?:a )?(?:task|todo)(?: to| for)?|create (?:a )?task(?: to| for)?|make (?:a )?task(?: to| for)?|remind me to|task|todo|please`),
		regexp.MustCompile(`(?i)thêm việc|tạo việc|nhiệm vụ`),
		regexp.MustCompile(`(?i)\bat\b|\blúc\b`),
	}

	leadingParticles = []string{"に", "を", "は", "が", "の", "で", "へ", "と", "、", ",", " ", "　"}
)

// FallbackTask derives a TaskIntent directly from the raw message when
// the model-backed task extractor failed but the message still matched
// task vocabulary. Deterministic, never returns an empty title.
func FallbackTask(text string, ref time.Time, dates *datemath.Parser) TaskIntent {
	intent := TaskIntent{Priority: model.PriorityMedium}

	if deadline, ok := dates.Infer(text, ref); ok {
		intent.Deadline = deadline
	} else {
		intent.Deadline = dates.StartOfDay(ref)
	}

	intent.ScheduledTime = extractScheduledTime(text)
	intent.EstimatedMinutes = extractEstimatedMinutes(text)

	title := text
	for _, re := range stripPatterns {
		title = re.ReplaceAllString(title, " ")
	}
	title = strings.Join(strings.Fields(title), " ")
	title = trimLeadingParticles(title)
	title = trimTrailingParticles(title)

	if utf8.RuneCountInString(title) < minTitleRunes {
		title = strings.TrimSpace(text)
	}
	intent.Title = title

	return intent
}

func extractScheduledTime(text string) string {
	// Durations blanked first so 2時間 never reads as a 2時 clock time.
	cleaned := reDurationHrs.ReplaceAllString(text, " ")
	cleaned = reDurationMin.ReplaceAllString(cleaned, " ")

	if m := reClockJa.FindStringSubmatch(cleaned); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err == nil && hour <= 23 {
			minute := 0
			if m[2] != "" {
				minute = 30
			} else if m[3] != "" {
				minute, _ = strconv.Atoi(m[3])
			}
			return fmt.Sprintf("%02d:%02d:00", hour, minute)
		}
	}
	if m := reClockColon.FindStringSubmatch(cleaned); m != nil {
		hour, err1 := strconv.Atoi(m[1])
		minute, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d:00", hour, minute)
		}
	}
	return ""
}

func extractEstimatedMinutes(text string) int {
	total := 0
	if m := reDurationHrs.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		if hours, err := strconv.Atoi(digits); err == nil {
			total += hours * 60
			if strings.Contains(m[0], "半") {
				total += 30
			}
		}
	}
	if m := reDurationMin.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		if minutes, err := strconv.Atoi(digits); err == nil {
			total += minutes
		}
	}
	return total
}

func trimLeadingParticles(s string) string {
	for {
		trimmed := s
		for _, p := range leadingParticles {
			trimmed = strings.TrimPrefix(trimmed, p)
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func trimTrailingParticles(s string) string {
	for {
		trimmed := strings.TrimRight(s, " 　、,")
		for _, p := range []string{"に", "を", "の", "で", "へ", "と"} {
			trimmed = strings.TrimSuffix(trimmed, p)
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
