// Package extract turns free-text chat messages into structured intents
// via a model-backed quick parse with deterministic fallbacks.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"studyflow/internal/model"
	"studyflow/internal/timetable"
	"studyflow/pkg/datemath"
	"studyflow/pkg/llmprovider"
	pkgLog "studyflow/pkg/log"
)

const (
	extractTemperature = 0.2
	extractMaxTokens   = 2048
)

var errNoIntent = errors.New("no intent in model response")

// ContentGenerator is the slice of the provider manager the extractor
// needs; satisfied by *llmprovider.Manager.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Wanted mirrors the trigger classifier's booleans: only wanted
// extractors are invoked, since each may cost a model call.
type Wanted struct {
	Task            bool
	Timetable       bool
	KnowledgeQuery  bool
	KnowledgeCreate bool
}

// Errors records per-extractor failures so callers can distinguish "no
// intent" from "extraction failed" (the latter arms the fallback path).
type Errors struct {
	Task            error
	Timetable       error
	KnowledgeQuery  error
	KnowledgeCreate error
}

// Extractor runs the intent extraction cascade.
type Extractor struct {
	l     pkgLog.Logger
	llm   ContentGenerator
	dates *datemath.Parser
}

// New creates an Extractor.
func New(l pkgLog.Logger, llm ContentGenerator, dates *datemath.Parser) *Extractor {
	return &Extractor{l: l, llm: llm, dates: dates}
}

// wire types matching the JSON the prompts request.
type wireTask struct {
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Priority         string        `json:"priority"`
	Deadline         string        `json:"deadline"`
	ScheduledTime    string        `json:"scheduled_time"`
	EstimatedMinutes int           `json:"estimated_minutes"`
	Tags             []string      `json:"tags"`
	Subtasks         []SubtaskSpec `json:"subtasks"`
}

type wireTimetable struct {
	Name       string `json:"name"`
	Day        string `json:"day"`
	Period     int    `json:"period"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room"`
	Instructor string `json:"instructor"`
}

type quickParseResponse struct {
	Task            *wireTask                `json:"task"`
	Timetable       *wireTimetable           `json:"timetable"`
	KnowledgeQuery  *KnowledgeQueryIntent    `json:"knowledge_query"`
	KnowledgeCreate *KnowledgeCreationIntent `json:"knowledge_create"`
}

// QuickParse attempts all wanted extractors in one batched model call.
// If the batch fails, each wanted extractor is retried independently so
// a timeout in one never blocks the others. Per-extractor failures are
// reported in Errors, never returned.
func (e *Extractor) QuickParse(ctx context.Context, message string, history []model.Message, want Wanted) (Intents, Errors) {
	ref := time.Now().In(e.dates.Location())
	nowStr := ref.Format(time.RFC3339)

	if intents, err := e.quickParseOnce(ctx, message, nowStr, ref, history, want); err == nil {
		return intents, Errors{}
	} else {
		e.l.Warnf(ctx, "extract.QuickParse batched call failed, retrying independently: %v", err)
	}

	var (
		intents Intents
		errs    Errors
	)
	if want.Task {
		intents.Task, errs.Task = e.ExtractTask(ctx, message, ref, history)
	}
	if want.Timetable {
		intents.Timetable, errs.Timetable = e.ExtractTimetable(ctx, message, ref, history)
	}
	if want.KnowledgeQuery {
		intents.KnowledgeQuery, errs.KnowledgeQuery = e.ExtractKnowledgeQuery(ctx, message, ref, history)
	}
	if want.KnowledgeCreate {
		intents.KnowledgeCreate, errs.KnowledgeCreate = e.ExtractKnowledgeCreation(ctx, message, ref, history)
	}
	return intents, errs
}

func (e *Extractor) quickParseOnce(ctx context.Context, message, nowStr string, ref time.Time, history []model.Message, want Wanted) (Intents, error) {
	prompt := buildQuickParsePrompt(message, nowStr, want.Task, want.Timetable, want.KnowledgeQuery, want.KnowledgeCreate, history)
	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return Intents{}, err
	}

	var resp quickParseResponse
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &resp); err != nil {
		return Intents{}, fmt.Errorf("parse quick-parse response: %w", err)
	}

	var intents Intents
	if want.Task && resp.Task != nil {
		intent, err := e.convertTask(resp.Task, message, ref)
		if err != nil {
			return Intents{}, err
		}
		intents.Task = intent
	}
	if want.Timetable && resp.Timetable != nil {
		intents.Timetable = convertTimetable(resp.Timetable)
	}
	if want.KnowledgeQuery && resp.KnowledgeQuery != nil {
		intents.KnowledgeQuery = normalizeQuery(resp.KnowledgeQuery)
	}
	if want.KnowledgeCreate && resp.KnowledgeCreate != nil {
		intents.KnowledgeCreate = normalizeCreation(resp.KnowledgeCreate)
	}
	return intents, nil
}

// ExtractTask returns (nil, nil) when the message carries no task intent.
func (e *Extractor) ExtractTask(ctx context.Context, message string, ref time.Time, history []model.Message) (*TaskIntent, error) {
	raw, err := e.generate(ctx, buildTaskPrompt(message, ref.Format(time.RFC3339), history))
	if err != nil {
		return nil, err
	}
	w, err := unmarshalNullable[wireTask](raw)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return e.convertTask(w, message, ref)
}

func (e *Extractor) ExtractTimetable(ctx context.Context, message string, ref time.Time, history []model.Message) (*TimetableIntent, error) {
	raw, err := e.generate(ctx, buildTimetablePrompt(message, ref.Format(time.RFC3339), history))
	if err != nil {
		return nil, err
	}
	w, err := unmarshalNullable[wireTimetable](raw)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return convertTimetable(w), nil
}

func (e *Extractor) ExtractKnowledgeQuery(ctx context.Context, message string, ref time.Time, history []model.Message) (*KnowledgeQueryIntent, error) {
	raw, err := e.generate(ctx, buildKnowledgeQueryPrompt(message, ref.Format(time.RFC3339), history))
	if err != nil {
		return nil, err
	}
	q, err := unmarshalNullable[KnowledgeQueryIntent](raw)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}
	return normalizeQuery(q), nil
}

func (e *Extractor) ExtractKnowledgeCreation(ctx context.Context, message string, ref time.Time, history []model.Message) (*KnowledgeCreationIntent, error) {
	raw, err := e.generate(ctx, buildKnowledgeCreatePrompt(message, ref.Format(time.RFC3339), history))
	if err != nil {
		return nil, err
	}
	c, err := unmarshalNullable[KnowledgeCreationIntent](raw)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return normalizeCreation(c), nil
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: extractionSystemPrompt,
		Messages:          []llmprovider.Message{{Role: "user", Content: prompt}},
		Temperature:       extractTemperature,
		MaxTokens:         extractMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", errNoIntent
	}
	return resp.Content, nil
}

func unmarshalNullable[T any](raw string) (*T, error) {
	cleaned := sanitizeJSONResponse(raw)
	if cleaned == "" || cleaned == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, fmt.Errorf("parse extractor response: %w", err)
	}
	return &v, nil
}

func (e *Extractor) convertTask(w *wireTask, message string, ref time.Time) (*TaskIntent, error) {
	title := strings.TrimSpace(w.Title)
	if title == "" {
		return nil, errNoIntent
	}

	intent := &TaskIntent{
		Title:            title,
		Description:      w.Description,
		EstimatedMinutes: w.EstimatedMinutes,
		Priority:         PriorityFromLevel(w.Priority),
		ScheduledTime:    normalizeClock(w.ScheduledTime),
		Tags:             w.Tags,
		Subtasks:         w.Subtasks,
	}

	if deadline, err := time.ParseInLocation("2006-01-02", w.Deadline, e.dates.Location()); err == nil {
		intent.Deadline = deadline
	} else if inferred, ok := e.dates.Infer(message, ref); ok {
		intent.Deadline = inferred
	} else {
		intent.Deadline = e.dates.StartOfDay(ref)
	}
	return intent, nil
}

func convertTimetable(w *wireTimetable) *TimetableIntent {
	intent := &TimetableIntent{
		Name:       strings.TrimSpace(w.Name),
		Day:        strings.ToLower(strings.TrimSpace(w.Day)),
		Period:     w.Period,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		Room:       w.Room,
		Instructor: w.Instructor,
		Color:      timetable.DefaultColor,
		Icon:       timetable.DefaultIcon,
	}
	if intent.Period < 1 {
		intent.Period = periodFromTimes(w.StartTime, w.EndTime)
	}
	return intent
}

// periodFromTimes mirrors the confirm endpoint's derivation: rounded
// whole hours, never below 1.
func periodFromTimes(startTime, endTime string) int {
	start, err1 := time.Parse("15:04", startTime)
	end, err2 := time.Parse("15:04", endTime)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 1
	}
	period := int(math.Round(end.Sub(start).Hours()))
	if period < 1 {
		period = 1
	}
	return period
}

func normalizeQuery(q *KnowledgeQueryIntent) *KnowledgeQueryIntent {
	if q.ItemType == "" {
		q.ItemType = "any"
	}
	return q
}

func normalizeCreation(c *KnowledgeCreationIntent) *KnowledgeCreationIntent {
	if len(c.Categories) == 0 && len(c.Items) == 0 {
		return nil
	}
	return c
}

// normalizeClock pads "HH:MM" to "HH:MM:SS".
func normalizeClock(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) == 5 {
		return value + ":00"
	}
	return value
}
