package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser infers absolute calendar dates from free text.
type Parser struct {
	location *time.Location
}

// NewParser creates a date parser for the given IANA timezone string.
// e.g. "Asia/Tokyo"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

var (
	reNumericDate  = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	reJapaneseDate = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)
	reKanjiWeekday = regexp.MustCompile(`([月火水木金土日])曜`)
	reEnWeekday    = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	reViWeekday    = regexp.MustCompile(`(?i)thứ\s*(hai|ba|tư|năm|sáu|bảy|[2-7])|chủ\s*nhật`)
	reNextWeek     = regexp.MustCompile(`(?i)来週|next\s+week|tuần\s+(sau|tới)`)
)

// relativeRules maps relative-day keywords to day offsets. Order matters:
// "day after tomorrow" must be tested before "tomorrow", 明後日 before 明日.
var relativeRules = []struct {
	keyword string
	offset  int
}{
	{"明後日", 2},
	{"day after tomorrow", 2},
	{"ngày kia", 2},
	{"明日", 1},
	{"tomorrow", 1},
	{"ngày mai", 1},
	{"今日", 0},
	{"today", 0},
	{"hôm nay", 0},
}

var kanjiWeekdays = map[string]time.Weekday{
	"日": time.Sunday,
	"月": time.Monday,
	"火": time.Tuesday,
	"水": time.Wednesday,
	"木": time.Thursday,
	"金": time.Friday,
	"土": time.Saturday,
}

var enWeekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Vietnamese counts weekdays from "thứ 2" (Monday) to "thứ 7" (Saturday);
// Sunday is "chủ nhật".
var viWeekdays = map[string]time.Weekday{
	"hai": time.Monday, "2": time.Monday,
	"ba": time.Tuesday, "3": time.Tuesday,
	"tư": time.Wednesday, "4": time.Wednesday,
	"năm": time.Thursday, "5": time.Thursday,
	"sáu": time.Friday, "6": time.Friday,
	"bảy": time.Saturday, "7": time.Saturday,
}

// Infer extracts a calendar date from free text, relative to ref.
// The cascade tries explicit dates first, then relative-day keywords,
// then named weekdays with an optional next-week modifier. Returns the
// start of the matched day in the parser's timezone, or ok=false when
// nothing matched. Deterministic for a fixed ref.
func (p *Parser) Infer(text string, ref time.Time) (time.Time, bool) {
	ref = ref.In(p.location)

	if d, ok := p.inferExplicit(text, ref); ok {
		return d, true
	}
	if d, ok := p.inferRelative(text, ref); ok {
		return d, true
	}
	if d, ok := p.inferWeekday(text, ref); ok {
		return d, true
	}
	return time.Time{}, false
}

// inferExplicit handles "2025-01-11", "2025/1/11" and "1月11日".
// Impossible dates (Feb 30) are rejected, not normalized.
func (p *Parser) inferExplicit(text string, ref time.Time) (time.Time, bool) {
	if m := reNumericDate.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := p.validDate(year, month, day); ok {
			return d, true
		}
	}

	if m := reJapaneseDate.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if d, ok := p.validDate(ref.Year(), month, day); ok {
			return d, true
		}
	}

	return time.Time{}, false
}

func (p *Parser) inferRelative(text string, ref time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	for _, rule := range relativeRules {
		if strings.Contains(lower, rule.keyword) {
			return p.StartOfDay(ref.AddDate(0, 0, rule.offset)), true
		}
	}
	return time.Time{}, false
}

// inferWeekday finds a named weekday in any supported language and returns
// its next occurrence. The same weekday as ref counts as today (offset 0);
// a next-week modifier adds 7 days on top.
func (p *Parser) inferWeekday(text string, ref time.Time) (time.Time, bool) {
	target, ok := findWeekday(text)
	if !ok {
		return time.Time{}, false
	}

	offset := int(target-ref.Weekday()+7) % 7
	if reNextWeek.MatchString(text) {
		offset += 7
	}
	return p.StartOfDay(ref.AddDate(0, 0, offset)), true
}

func findWeekday(text string) (time.Weekday, bool) {
	if m := reKanjiWeekday.FindStringSubmatch(text); m != nil {
		return kanjiWeekdays[m[1]], true
	}
	if m := reEnWeekday.FindStringSubmatch(text); m != nil {
		return enWeekdays[strings.ToLower(m[1])], true
	}
	if m := reViWeekday.FindStringSubmatch(text); m != nil {
		if m[1] == "" {
			// matched "chủ nhật"
			return time.Sunday, true
		}
		return viWeekdays[strings.ToLower(m[1])], true
	}
	return time.Sunday, false
}

// validDate builds a date and verifies the components survived, so that
// e.g. Feb 30 (normalized by time.Date to Mar 2) is rejected.
func (p *Parser) validDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.location)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// StartOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
