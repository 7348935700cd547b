package service

import (
	"context"
	"fmt"
	"strings"

	"sukoon/model"
	"sukoon/platform"
)

var logger = platform.Logger

const (
	// historyWindow is how many recent messages feed back into the prompt.
	historyWindow = 10
	// historyPageSize is the default page for the history endpoint.
	historyPageSize = 50
)

const personaPreamble = `You are a caring, empathetic mental wellbeing companion. ` +
	`Listen without judgement, validate feelings, and offer gentle, practical ` +
	`support. You are not a doctor or therapist: never diagnose, never prescribe, ` +
	`and suggest professional help when someone seems to be in crisis. ` +
	`Keep replies warm and reasonably short.`

// HistoryStore is the persistence surface the orchestrator needs.
type HistoryStore interface {
	Append(ctx context.Context, msg *model.ChatMessage) error
	Recent(ctx context.Context, userId string, limit int) ([]model.ChatMessage, error)
	Purge(ctx context.Context, userId string) error
}

// Generator produces a reply for a fully composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatResult is what the chat endpoint returns to the client. Fallback marks
// a degraded (canned) reply delivered because the generator failed.
type ChatResult struct {
	Text     string
	Language string
	Fallback bool
}

// ChatService sequences detection, persistence, generation and fallback for
// one chat turn. Identity is passed per request; an empty userId means an
// anonymous session, which is never persisted.
type ChatService struct {
	store     HistoryStore
	generator Generator
	fallback  *FallbackPolicy
}

func NewChatService(store HistoryStore, generator Generator, fallback *FallbackPolicy) *ChatService {
	return &ChatService{
		store:     store,
		generator: generator,
		fallback:  fallback,
	}
}

// Chat runs one conversational turn. Generation failure is never an error:
// the caller always gets a reply, degraded if need be. The only fatal
// condition is losing the authenticated user's own message.
func (s *ChatService) Chat(ctx context.Context, userId, message, language string) (*ChatResult, error) {
	if language == "" {
		language = DetectLanguage(message)
	}

	if userId == "" {
		return s.anonymousTurn(ctx, message, language), nil
	}
	return s.authenticatedTurn(ctx, userId, message, language)
}

func (s *ChatService) anonymousTurn(ctx context.Context, message, language string) *ChatResult {
	text, err := s.generator.Generate(ctx, composePrompt(language, "", message))
	if err != nil {
		logger.Warnf("[anonymous] generation failed, serving fallback: %s", err)
		return &ChatResult{Text: s.fallback.Reply(language), Language: language, Fallback: true}
	}
	return &ChatResult{Text: text, Language: language}
}

func (s *ChatService) authenticatedTurn(ctx context.Context, userId, message, language string) (*ChatResult, error) {
	// The user's own message must be durable before anything else happens.
	// If this write fails there is nothing worth generating against.
	userMsg := &model.ChatMessage{
		UserId:   userId,
		Role:     model.ChatRoleUser,
		Content:  message,
		Language: language,
	}
	if err := s.store.Append(ctx, userMsg); err != nil {
		logger.Warnf("[%s] failed to persist user message: %s", userId, err)
		return nil, err
	}

	transcript := s.recentTranscript(ctx, userId)

	text, err := s.generator.Generate(ctx, composePrompt(language, transcript, message))
	if err != nil {
		logger.Warnf("[%s] generation failed, serving fallback: %s", userId, err)
		// The canned reply is delivered but never persisted, so future
		// prompts are not polluted with non-generated text.
		return &ChatResult{Text: s.fallback.Reply(language), Language: language, Fallback: true}, nil
	}

	assistantMsg := &model.ChatMessage{
		UserId:   userId,
		Role:     model.ChatRoleAssistant,
		Content:  text,
		Language: language,
	}
	if err := s.store.Append(ctx, assistantMsg); err != nil {
		// The reply exists, losing its durable record is not worth failing
		// the request over.
		logger.Warnf("[%s] failed to persist assistant message: %s", userId, err)
	}

	return &ChatResult{Text: text, Language: language}, nil
}

// recentTranscript fetches the prompt context window. A failed read degrades
// to an empty transcript rather than failing the turn.
func (s *ChatService) recentTranscript(ctx context.Context, userId string) string {
	messages, err := s.store.Recent(ctx, userId, historyWindow)
	if err != nil {
		logger.Warnf("[%s] failed to load history, continuing without context: %s", userId, err)
		return ""
	}
	return formatTranscript(messages)
}

// History returns the user's conversation in chronological order.
func (s *ChatService) History(ctx context.Context, userId string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = historyPageSize
	}
	messages, err := s.store.Recent(ctx, userId, limit)
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// ClearHistory removes the user's whole conversation. The error is surfaced:
// a failed delete must never be reported as success.
func (s *ChatService) ClearHistory(ctx context.Context, userId string) error {
	return s.store.Purge(ctx, userId)
}

// formatTranscript renders messages (given most-recent-first) as the
// oldest-first "User:/Assistant:" transcript the prompt embeds.
func formatTranscript(messages []model.ChatMessage) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for i := len(messages) - 1; i >= 0; i-- {
		label := "User"
		if messages[i].Role == model.ChatRoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, messages[i].Content)
	}
	return b.String()
}

func composePrompt(language, transcript, message string) string {
	var b strings.Builder
	b.WriteString(personaPreamble)
	fmt.Fprintf(&b, "\n\nReply in language: %s\n", language)
	if transcript != "" {
		b.WriteString("\nConversation so far:\n")
		b.WriteString(transcript)
	}
	fmt.Fprintf(&b, "\nUser: %s\nAssistant:", message)
	return b.String()
}

func reverseMessages(messages []model.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
