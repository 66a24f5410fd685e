package usecase

import (
	"context"
	"strings"
	"time"

	"studyflow/internal/assistant"
	"studyflow/internal/assistant/classify"
	"studyflow/internal/assistant/extract"
	"studyflow/internal/conversation"
	"studyflow/internal/model"
)

// StreamMessage runs the full multi-intent pipeline with a streaming
// model call. Side effects (user message, actions) commit before the
// stream starts; the assistant message is accumulated in memory and
// persisted once, only after the stream's terminal event, so a client
// disconnect never leaves a half-written message.
func (uc *implUseCase) StreamMessage(ctx context.Context, sc model.Scope, input assistant.SendMessageInput, emit assistant.StreamHandler) error {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return assistant.ErrEmptyMessage
	}

	now := time.Now().In(uc.dates.Location())

	if reply, ok := classify.InstantReply(message, now); ok {
		out, err := uc.persistExchange(ctx, sc, input.ConversationID, message, reply, nil)
		if err != nil {
			return err
		}
		if err := emit(assistant.StreamEvent{Type: assistant.StreamEventChunk, Content: reply}); err != nil {
			return err
		}
		return emit(assistant.StreamEvent{
			Type:        assistant.StreamEventDone,
			MessageID:   out.AssistantMessage.ID,
			FullContent: reply,
		})
	}

	trig := classify.DetectTriggers(message)
	lightweight := classify.IsLightweight(message, uc.opts.LightweightLengthThreshold)
	history := uc.recentHistory(ctx, sc, input.ConversationID)

	// Phase 1: persist the user message and execute actions. These
	// commit regardless of how the stream ends.
	var out assistant.SendMessageOutput
	var intents extract.Intents
	acted := false
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		userMsg, err := uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: input.ConversationID,
			Role:           model.RoleUser,
			Content:        message,
		})
		if err != nil {
			return err
		}
		out.UserMessage = userMsg

		want := extract.Wanted{
			Task:            trig.Task,
			Timetable:       trig.Timetable,
			KnowledgeQuery:  trig.KnowledgeQuery,
			KnowledgeCreate: trig.KnowledgeCreate,
		}
		if want.Task || want.Timetable || want.KnowledgeQuery || want.KnowledgeCreate {
			var errs extract.Errors
			intents, errs = uc.extractor.QuickParse(ctx, message, history, want)
			if want.Task && intents.Task == nil && errs.Task != nil {
				fb := extract.FallbackTask(message, now, uc.dates)
				intents.Task = &fb
			}
		}
		acted = uc.executeActions(ctx, sc, intents, &out)
		return nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "assistant.usecase.StreamMessage: %v", err)
		return err
	}
	uc.rememberMessages(input.ConversationID, out.UserMessage)

	// Phase 2: stream the model reply, accumulating chunks only. An
	// emit failure means the client went away; nothing is persisted.
	req := uc.buildRequest(ctx, sc, message, history, lightweight && !intents.Any(), out.KnowledgeItems)
	modelCtx, cancel := context.WithTimeout(ctx, uc.modelTimeout())
	defer cancel()

	var emitErr error
	resp, modelErr := uc.llm.GenerateStream(modelCtx, req, func(chunk string) error {
		if err := emit(assistant.StreamEvent{Type: assistant.StreamEventChunk, Content: chunk}); err != nil {
			emitErr = err
			return err
		}
		return nil
	})
	if emitErr != nil {
		uc.l.Warnf(ctx, "assistant.usecase.StreamMessage: client dropped mid-stream: %v", emitErr)
		return emitErr
	}

	var content string
	var meta map[string]interface{}
	var tokens int
	switch {
	case modelErr == nil:
		suffix := confirmationSuffix(out)
		content = resp.Content + suffix
		meta = responseMetadata(resp)
		tokens = tokenCount(resp)
		if suffix != "" {
			if err := emit(assistant.StreamEvent{Type: assistant.StreamEventChunk, Content: suffix}); err != nil {
				return err
			}
		}
	case acted:
		uc.l.Warnf(ctx, "assistant.usecase.StreamMessage: model failed, composing from actions: %v", modelErr)
		content = degradedReply(out)
		if err := emit(assistant.StreamEvent{Type: assistant.StreamEventChunk, Content: content}); err != nil {
			return err
		}
	case lightweight:
		uc.l.Warnf(ctx, "assistant.usecase.StreamMessage: model failed with nothing to recover: %v", modelErr)
		return emit(assistant.StreamEvent{Type: assistant.StreamEventError, Content: "model unavailable"})
	default:
		uc.l.Warnf(ctx, "assistant.usecase.StreamMessage: model failed, sending fallback: %v", modelErr)
		content = fallbackReply
		if err := emit(assistant.StreamEvent{Type: assistant.StreamEventChunk, Content: content}); err != nil {
			return err
		}
	}

	// Phase 3: persist the accumulated reply atomically, then confirm.
	var asstMsg model.Message
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		asstMsg, err = uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: input.ConversationID,
			Role:           model.RoleAssistant,
			Content:        content,
			TokenCount:     tokens,
			Metadata:       meta,
		})
		return err
	})
	if err != nil {
		uc.l.Errorf(ctx, "assistant.usecase.StreamMessage: persist reply: %v", err)
		return err
	}
	uc.rememberMessages(input.ConversationID, asstMsg)

	return emit(assistant.StreamEvent{
		Type:        assistant.StreamEventDone,
		MessageID:   asstMsg.ID,
		FullContent: content,
	})
}
