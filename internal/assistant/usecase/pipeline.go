package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"studyflow/internal/assistant"
	"studyflow/internal/assistant/classify"
	"studyflow/internal/assistant/extract"
	"studyflow/internal/conversation"
	"studyflow/internal/model"
	"studyflow/pkg/llmprovider"
)

// errComposeFallback signals path 3 of the composer: the pipeline's
// transaction rolls back and a fixed fallback exchange is persisted in
// a fresh one.
var errComposeFallback = errors.New("compose fallback")

func (uc *implUseCase) StartConversation(ctx context.Context, sc model.Scope, input assistant.StartConversationInput) (assistant.SendMessageOutput, error) {
	conv, err := uc.convUC.Create(ctx, sc, conversation.CreateInput{Title: input.Title})
	if err != nil {
		uc.l.Errorf(ctx, "assistant.usecase.StartConversation.Create: %v", err)
		return assistant.SendMessageOutput{}, err
	}

	out, err := uc.run(ctx, sc, conv.ID, input.Message, true)
	if err != nil {
		return assistant.SendMessageOutput{}, err
	}
	out.Conversation = &conv
	return out, nil
}

func (uc *implUseCase) SendMessage(ctx context.Context, sc model.Scope, input assistant.SendMessageInput) (assistant.SendMessageOutput, error) {
	return uc.run(ctx, sc, input.ConversationID, input.Message, false)
}

func (uc *implUseCase) SendMessageContextAware(ctx context.Context, sc model.Scope, input assistant.SendMessageInput) (assistant.SendMessageOutput, error) {
	return uc.run(ctx, sc, input.ConversationID, input.Message, true)
}

// run is the shared pipeline behind the blocking message endpoints.
// contextAware enables the timetable and knowledge extractors; the
// plain variant only ever extracts tasks.
func (uc *implUseCase) run(ctx context.Context, sc model.Scope, conversationID, message string, contextAware bool) (assistant.SendMessageOutput, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return assistant.SendMessageOutput{}, assistant.ErrEmptyMessage
	}

	now := time.Now().In(uc.dates.Location())

	if reply, ok := classify.InstantReply(message, now); ok {
		return uc.persistExchange(ctx, sc, conversationID, message, reply, nil)
	}

	trig := classify.DetectTriggers(message)
	lightweight := classify.IsLightweight(message, uc.opts.LightweightLengthThreshold)
	history := uc.recentHistory(ctx, sc, conversationID)

	var out assistant.SendMessageOutput
	txErr := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		userMsg, err := uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: conversationID,
			Role:           model.RoleUser,
			Content:        message,
		})
		if err != nil {
			return err
		}
		out.UserMessage = userMsg

		want := extract.Wanted{Task: trig.Task}
		if contextAware {
			want = extract.Wanted{
				Task:            trig.Task,
				Timetable:       trig.Timetable,
				KnowledgeQuery:  trig.KnowledgeQuery,
				KnowledgeCreate: trig.KnowledgeCreate,
			}
		}

		var intents extract.Intents
		if want.Task || want.Timetable || want.KnowledgeQuery || want.KnowledgeCreate {
			var errs extract.Errors
			intents, errs = uc.extractor.QuickParse(ctx, message, history, want)
			if want.Task && intents.Task == nil && errs.Task != nil {
				fb := extract.FallbackTask(message, now, uc.dates)
				intents.Task = &fb
			}
		}

		acted := uc.executeActions(ctx, sc, intents, &out)

		resp, modelErr := uc.generateReply(ctx, sc, message, history, lightweight && !intents.Any(), out.KnowledgeItems)

		var content string
		var meta map[string]interface{}
		switch {
		case modelErr == nil:
			content = resp.Content + confirmationSuffix(out)
			meta = responseMetadata(resp)
		case acted:
			uc.l.Warnf(ctx, "assistant.usecase.run: model failed, composing from actions: %v", modelErr)
			content = degradedReply(out)
		default:
			uc.l.Warnf(ctx, "assistant.usecase.run: model failed with nothing to recover: %v", modelErr)
			if lightweight {
				return assistant.ErrModelUnavailable
			}
			return errComposeFallback
		}

		asstMsg, err := uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: conversationID,
			Role:           model.RoleAssistant,
			Content:        content,
			TokenCount:     tokenCount(resp),
			Metadata:       meta,
		})
		if err != nil {
			return err
		}
		out.AssistantMessage = asstMsg
		return nil
	})

	switch {
	case txErr == nil:
		uc.rememberMessages(conversationID, out.UserMessage, out.AssistantMessage)
		return out, nil
	case errors.Is(txErr, errComposeFallback):
		// Path 3: the AI-facing work rolled back; keep the exchange by
		// re-persisting the user message alongside the fixed reply.
		return uc.persistExchange(ctx, sc, conversationID, message, fallbackReply, nil)
	case errors.Is(txErr, assistant.ErrModelUnavailable):
		return assistant.SendMessageOutput{}, assistant.ErrModelUnavailable
	default:
		uc.l.Errorf(ctx, "assistant.usecase.run: %v", txErr)
		return assistant.SendMessageOutput{}, txErr
	}
}

// persistExchange writes a user/assistant message pair in one
// transaction, bypassing extraction and the model entirely.
func (uc *implUseCase) persistExchange(ctx context.Context, sc model.Scope, conversationID, userText, assistantText string, meta map[string]interface{}) (assistant.SendMessageOutput, error) {
	var out assistant.SendMessageOutput
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		userMsg, err := uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: conversationID,
			Role:           model.RoleUser,
			Content:        userText,
		})
		if err != nil {
			return err
		}
		asstMsg, err := uc.convUC.AppendMessage(ctx, sc, conversation.AppendMessageInput{
			ConversationID: conversationID,
			Role:           model.RoleAssistant,
			Content:        assistantText,
			Metadata:       meta,
		})
		if err != nil {
			return err
		}
		out.UserMessage = userMsg
		out.AssistantMessage = asstMsg
		return nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "assistant.usecase.persistExchange: %v", err)
		return assistant.SendMessageOutput{}, err
	}
	uc.rememberMessages(conversationID, out.UserMessage, out.AssistantMessage)
	return out, nil
}

// generateReply performs the bounded model call. Lightweight requests
// carry only recent history and a small token budget; everything else
// gets the fully assembled context.
func (uc *implUseCase) generateReply(ctx context.Context, sc model.Scope, message string, history []model.Message, lightweight bool, knowledgeHits []model.KnowledgeItem) (*llmprovider.Response, error) {
	req := uc.buildRequest(ctx, sc, message, history, lightweight, knowledgeHits)

	ctx, cancel := context.WithTimeout(ctx, uc.modelTimeout())
	defer cancel()
	return uc.llm.GenerateContent(ctx, req)
}

func (uc *implUseCase) buildRequest(ctx context.Context, sc model.Scope, message string, history []model.Message, lightweight bool, knowledgeHits []model.KnowledgeItem) *llmprovider.Request {
	req := &llmprovider.Request{
		SystemInstruction: assistantSystemPrompt,
		Messages:          chatMessages(history, message),
		Temperature:       0.7,
		MaxTokens:         uc.opts.FullMaxTokens,
	}
	if lightweight {
		req.MaxTokens = uc.opts.LightweightMaxTokens
		return req
	}
	if studyContext := uc.assembleContext(ctx, sc, knowledgeHits); studyContext != "" {
		req.SystemInstruction = assistantSystemPrompt + "\n\n" + studyContext
	}
	return req
}

// chatMessages maps the stored window onto the provider request,
// ending with the inbound message.
func chatMessages(history []model.Message, message string) []llmprovider.Message {
	msgs := make([]llmprovider.Message, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, llmprovider.Message{Role: string(m.Role), Content: m.Content})
	}
	return append(msgs, llmprovider.Message{Role: "user", Content: message})
}

func responseMetadata(resp *llmprovider.Response) map[string]interface{} {
	if resp == nil {
		return nil
	}
	meta := map[string]interface{}{
		"provider": resp.ProviderName,
		"model":    resp.ModelName,
	}
	if resp.FinishReason != "" {
		meta["finish_reason"] = resp.FinishReason
	}
	return meta
}

func tokenCount(resp *llmprovider.Response) int {
	if resp == nil || resp.Usage == nil {
		return 0
	}
	return resp.Usage.OutputTokens
}
