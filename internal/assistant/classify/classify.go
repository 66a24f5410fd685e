// Package classify implements the instant-reply gate, the per-extractor
// trigger booleans and the lightweight-message check that front the
// chat pipeline.
package classify

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultLightweightThreshold is the message length (in runes) at or
// below which a trigger-free message is eligible for the cheap model call.
const DefaultLightweightThreshold = 20

// Triggers reports which intent extractors are worth invoking for a
// message. Any subset may be true at once.
type Triggers struct {
	Task            bool
	Timetable       bool
	KnowledgeQuery  bool
	KnowledgeCreate bool
}

// Any reports whether at least one extractor is triggered.
func (t Triggers) Any() bool {
	return t.Task || t.Timetable || t.KnowledgeQuery || t.KnowledgeCreate
}

// DetectTriggers evaluates every trigger pattern independently.
func DetectTriggers(text string) Triggers {
	return Triggers{
		Task:            taskTriggerRe.MatchString(text),
		Timetable:       timetableTriggerRe.MatchString(text),
		KnowledgeQuery:  knowledgeQueryTriggerRe.MatchString(text),
		KnowledgeCreate: knowledgeCreateTriggerRe.MatchString(text),
	}
}

// HasImportantIntent reports whether the text carries task, timetable
// or knowledge vocabulary, or a clock time adjacent to an action verb.
func HasImportantIntent(text string) bool {
	for _, r := range importantIntentRules {
		if r.re.MatchString(text) {
			return true
		}
	}
	return false
}

// InstantReply returns a canned reply for trivial messages. The
// important-intent override runs first: any real-request vocabulary
// disables the gate regardless of how greeting-like the text is.
func InstantReply(text string, now time.Time) (string, bool) {
	if HasImportantIntent(text) {
		return "", false
	}

	for _, r := range gateRules {
		if !r.re.MatchString(text) {
			continue
		}
		switch r.tag {
		case tagGreeting:
			return "こんにちは！今日は何をしましょうか？ (Hello! What shall we work on today?)", true
		case tagHelp:
			return "タスクの追加、時間割の相談、ノートの検索と作成ができます。例:「明日までに数学の宿題」「月曜の授業を教えて」", true
		case tagTimeQuery:
			return fmt.Sprintf("今は %s です。", now.Format("15:04")), true
		case tagDateQuery:
			return fmt.Sprintf("今日は %s です。", now.Format("2006年1月2日 (Mon)")), true
		case tagIdentity:
			return "私はあなたの学習アシスタントです。タスク・時間割・ノートの管理をお手伝いします。", true
		case tagCapability:
			return "タスク作成、時間割の提案、ノート検索・作成、学習計画の相談ができます。", true
		}
	}
	return "", false
}

// IsLightweight reports whether a message is short and free of trigger
// vocabulary, making it eligible for the small-budget model call.
func IsLightweight(text string, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLightweightThreshold
	}
	if utf8.RuneCountInString(text) > threshold {
		return false
	}
	return !DetectTriggers(text).Any() && !HasImportantIntent(text)
}
