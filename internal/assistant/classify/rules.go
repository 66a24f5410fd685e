package classify

import "regexp"

// rule pairs a compiled pattern with the tag it produces. Gate rules
// are evaluated in order with first-match-wins; trigger rules are
// evaluated independently.
type rule struct {
	tag string
	re  *regexp.Regexp
}

// Gate reply tags.
const (
	tagGreeting   = "greeting"
	tagHelp       = "help"
	tagTimeQuery  = "time"
	tagDateQuery  = "date"
	tagIdentity   = "identity"
	tagCapability = "capability"
)

// Important-intent vocabulary. Any match disables the instant-reply
// gate so a greeting attached to a real request is never swallowed.
var importantIntentRules = []rule{
	{"task", regexp.MustCompile(`(?i)タスク|やること|宿題|課題|締め?切り|追加して|作って|やらなきゃ|to-?do|task|add .*(task|todo)|remind|deadline|assignment|homework|làm bài|nhiệm vụ|bài tập|thêm việc`)},
	{"timetable", regexp.MustCompile(`(?i)時間割|授業|講義|[月火水木金土日]曜|来週|毎週|class|lecture|timetable|schedule|monday|tuesday|wednesday|thursday|friday|saturday|sunday|next week|thời khóa biểu|lớp học|thứ\s*[2-7]|chủ\s*nhật|tuần sau`)},
	{"knowledge", regexp.MustCompile(`(?i)ノート|メモして|覚えて|復習|knowledge|note|remember this|save this|flashcard|review|ghi chú|ôn tập|kiến thức`)},
	// A clock time next to an action verb marks a real request even in
	// an otherwise trivial-looking message.
	{"timed-action", regexp.MustCompile(`(?i)(\d{1,2}時|\d{1,2}:\d{2}|at \d{1,2}(\s?[ap]m)?|lúc \d{1,2})\s*(?:に|から)?.{0,20}(する|やる|勉強|do |study|work|làm|học)`)},
}

// Gate rules, first match wins. Greeting is bounded so long messages
// that merely open with a greeting fall through to the pipeline.
var gateRules = []rule{
	{tagGreeting, regexp.MustCompile(`(?i)^\s*(こんにちは|こんばんは|おはよう(ございます)?|やあ|hi|hello|hey|good (morning|afternoon|evening)|xin chào|chào bạn)\s*[!！。.]?\s*$`)},
	{tagHelp, regexp.MustCompile(`(?i)^\s*(ヘルプ|help|使い方|hướng dẫn)\s*[?？!！]?\s*$`)},
	{tagTimeQuery, regexp.MustCompile(`(?i)^\s*(今何時|いま何時|what time is it|mấy giờ rồi)\s*[?？]?\s*$`)},
	{tagDateQuery, regexp.MustCompile(`(?i)^\s*(今日は?何日|今日の日付|what('s| is) (the date|today'?s date)|hôm nay là ngày (gì|mấy))\s*[?？]?\s*$`)},
	{tagIdentity, regexp.MustCompile(`(?i)^\s*(あなたは誰|君は誰|who are you|bạn là ai)\s*[?？]?\s*$`)},
	{tagCapability, regexp.MustCompile(`(?i)^\s*(何ができる(の)?|what can you do|bạn làm được gì)\s*[?？]?\s*$`)},
}

// Trigger vocabulary per extractor. Each is an independent boolean.
var (
	taskTriggerRe = regexp.MustCompile(`(?i)タスク|宿題|課題|やること|やらなきゃ|追加して|作って|締め?切り|to-?do|task|todo|deadline|assignment|homework|remind me|nhiệm vụ|bài tập|thêm việc|việc cần làm`)

	timetableTriggerRe = regexp.MustCompile(`(?i)時間割|授業|講義|時限|教室|毎週|class|lecture|timetable|period|classroom|every week|thời khóa biểu|lớp học|tiết học|phòng học`)

	knowledgeQueryTriggerRe = regexp.MustCompile(`(?i)(ノート|メモ|知識|復習).{0,8}(見せて|探して|検索|ある|教えて)|何を(勉強|学んだ)|(search|find|show|look up).{0,20}(note|knowledge|flashcard)|what did i (learn|study)|(tìm|xem).{0,15}(ghi chú|kiến thức)`)

	knowledgeCreateTriggerRe = regexp.MustCompile(`(?i)(メモ|ノート)(して|に追加|に残して|を作って)|覚えておいて|記録して|(save|create|add|make).{0,20}(note|flashcard|snippet)|remember (this|that)|note (this|that) down|(lưu|tạo|thêm).{0,15}(ghi chú|thẻ)`)
)
