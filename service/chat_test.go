package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sukoon/model"
)

type fakeStore struct {
	messages      []model.ChatMessage
	nextID        uint
	appendErr     error
	appendErrRole model.ChatRole
	recentErr     error
	purgeErr      error
}

func (f *fakeStore) Append(ctx context.Context, msg *model.ChatMessage) error {
	if f.appendErr != nil && (f.appendErrRole == "" || f.appendErrRole == msg.Role) {
		return f.appendErr
	}
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeStore) Recent(ctx context.Context, userId string, limit int) ([]model.ChatMessage, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var out []model.ChatMessage
	for i := len(f.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if f.messages[i].UserId == userId {
			out = append(out, f.messages[i])
		}
	}
	return out, nil
}

func (f *fakeStore) Purge(ctx context.Context, userId string) error {
	if f.purgeErr != nil {
		return f.purgeErr
	}
	var kept []model.ChatMessage
	for _, m := range f.messages {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestChatService(t *testing.T, store *fakeStore, gen *fakeGenerator) *ChatService {
	t.Helper()
	fallback, err := NewFallbackPolicy()
	if err != nil {
		t.Fatalf("NewFallbackPolicy error: %v", err)
	}
	return NewChatService(store, gen, fallback)
}

func TestAnonymousChatGenerationFailureServesFallback(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "", "Hello", "")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if !result.Fallback {
		t.Fatalf("expected fallback result")
	}
	if result.Text == "" {
		t.Fatalf("expected non-empty fallback text")
	}
	if result.Language != "en" {
		t.Fatalf("expected detected language en, got %q", result.Language)
	}

	enSet := map[string]bool{}
	for _, s := range fallbackReplies["en"] {
		enSet[s] = true
	}
	if !enSet[result.Text] {
		t.Fatalf("fallback text not from en set: %q", result.Text)
	}
	if len(store.messages) != 0 {
		t.Fatalf("anonymous session must not persist, got %d messages", len(store.messages))
	}
}

func TestAnonymousChatSuccess(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{reply: "I'm glad you reached out."}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "", "I feel anxious today", "")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if result.Fallback {
		t.Fatalf("unexpected fallback")
	}
	if result.Text != "I'm glad you reached out." {
		t.Fatalf("unexpected reply %q", result.Text)
	}
	if len(store.messages) != 0 {
		t.Fatalf("anonymous session must not persist")
	}
}

func TestAuthenticatedChatPersistsBothTurns(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{reply: "कैसे हैं आप?"}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "7", "नमस्ते", "")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if result.Fallback {
		t.Fatalf("unexpected fallback")
	}
	if result.Language != "hi" {
		t.Fatalf("expected hi, got %q", result.Language)
	}

	if len(store.messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(store.messages))
	}
	if store.messages[0].Role != model.ChatRoleUser || store.messages[0].Content != "नमस्ते" {
		t.Fatalf("unexpected first row: %+v", store.messages[0])
	}
	if store.messages[1].Role != model.ChatRoleAssistant || store.messages[1].Content != "कैसे हैं आप?" {
		t.Fatalf("unexpected second row: %+v", store.messages[1])
	}
	for _, m := range store.messages {
		if m.Language != "hi" {
			t.Fatalf("expected persisted language hi, got %q", m.Language)
		}
	}

	history, err := svc.History(context.Background(), "7", 10)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if history[0].Role != model.ChatRoleUser || history[1].Role != model.ChatRoleAssistant {
		t.Fatalf("history not chronological: %+v", history)
	}
}

func TestAuthenticatedChatAbortsWhenUserWriteFails(t *testing.T) {
	store := &fakeStore{appendErr: model.ErrPersistence}
	gen := &fakeGenerator{reply: "should never be used"}
	svc := newTestChatService(t, store, gen)

	_, err := svc.Chat(context.Background(), "7", "Hello", "")
	if err == nil {
		t.Fatalf("expected persistence error")
	}
	if !errors.Is(err, model.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called after a failed user write, got %d calls", gen.calls)
	}
}

func TestAuthenticatedChatGenerationFailureNotPersisted(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "7", "Hello", "")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if !result.Fallback || result.Text == "" {
		t.Fatalf("expected non-empty fallback, got %+v", result)
	}

	// the user's message is durable, the canned reply is not
	if len(store.messages) != 1 {
		t.Fatalf("expected only the user message persisted, got %d rows", len(store.messages))
	}
	if store.messages[0].Role != model.ChatRoleUser {
		t.Fatalf("unexpected persisted role %q", store.messages[0].Role)
	}
}

func TestAuthenticatedChatHistoryReadFailureDegrades(t *testing.T) {
	store := &fakeStore{recentErr: model.ErrPersistence}
	gen := &fakeGenerator{reply: "still here"}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "7", "Hello", "")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if result.Fallback {
		t.Fatalf("history read failure must not force a fallback")
	}
	if result.Text != "still here" {
		t.Fatalf("unexpected reply %q", result.Text)
	}
}

func TestAuthenticatedChatAssistantWriteFailureStillReplies(t *testing.T) {
	store := &fakeStore{appendErr: model.ErrPersistence, appendErrRole: model.ChatRoleAssistant}
	gen := &fakeGenerator{reply: "noted"}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "7", "Hello", "")
	if err != nil {
		t.Fatalf("a failed assistant write must not fail the turn: %v", err)
	}
	if result.Fallback {
		t.Fatalf("unexpected fallback")
	}
	if result.Text != "noted" {
		t.Fatalf("unexpected reply %q", result.Text)
	}
	if len(store.messages) != 1 || store.messages[0].Role != model.ChatRoleUser {
		t.Fatalf("expected only the user message persisted, got %+v", store.messages)
	}
}

func TestPromptContainsTranscriptOldestFirst(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{reply: "ok"}
	svc := newTestChatService(t, store, gen)

	for _, msg := range []string{"one", "two"} {
		if _, err := svc.Chat(context.Background(), "7", msg, ""); err != nil {
			t.Fatalf("Chat error: %v", err)
		}
	}

	lastPrompt := gen.prompts[len(gen.prompts)-1]
	idxOne := strings.Index(lastPrompt, "User: one")
	idxOk := strings.Index(lastPrompt, "Assistant: ok")
	idxTwo := strings.Index(lastPrompt, "User: two")
	if idxOne == -1 || idxOk == -1 || idxTwo == -1 {
		t.Fatalf("prompt missing transcript lines:\n%s", lastPrompt)
	}
	if !(idxOne < idxOk && idxOk < idxTwo) {
		t.Fatalf("transcript not oldest-first:\n%s", lastPrompt)
	}
	if !strings.Contains(lastPrompt, "Reply in language: en") {
		t.Fatalf("prompt missing language instruction:\n%s", lastPrompt)
	}
}

func TestClearHistorySurfacesFailure(t *testing.T) {
	store := &fakeStore{purgeErr: model.ErrPersistence}
	gen := &fakeGenerator{}
	svc := newTestChatService(t, store, gen)

	if err := svc.ClearHistory(context.Background(), "7"); err == nil {
		t.Fatalf("expected purge error to surface")
	}
}

func TestExplicitLanguageSkipsDetection(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{err: errors.New("down")}
	svc := newTestChatService(t, store, gen)

	result, err := svc.Chat(context.Background(), "", "Hello", "hi")
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if result.Language != "hi" {
		t.Fatalf("explicit language overridden: got %q", result.Language)
	}

	hiSet := map[string]bool{}
	for _, s := range fallbackReplies["hi"] {
		hiSet[s] = true
	}
	if !hiSet[result.Text] {
		t.Fatalf("fallback for hi not from hi set: %q", result.Text)
	}
}
