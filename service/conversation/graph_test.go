package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type fakeChatter struct {
	answer   string
	err      error
	received [][]llms.MessageContent
}

func (f *fakeChatter) Converse(_ context.Context, messages []llms.MessageContent) (string, error) {
	f.received = append(f.received, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func messageText(msg llms.MessageContent) string {
	var sb strings.Builder
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func TestFirstTurnEmbedsDocumentAndQuestion(t *testing.T) {
	chatter := &fakeChatter{answer: "Paris."}
	g := NewGraph(chatter)

	state := State{
		DocumentText: "Paris is the capital of France.",
		Question:     "What is the capital of France?",
	}

	final, err := g.Invoke(context.Background(), state)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if final.Answer != "Paris." {
		t.Errorf("Expected answer from model, got %q", final.Answer)
	}

	if len(chatter.received) != 1 {
		t.Fatalf("Expected exactly one model call, got %d", len(chatter.received))
	}
	messages := chatter.received[0]
	if len(messages) != 1 {
		t.Fatalf("Expected a single composed message on first turn, got %d", len(messages))
	}

	text := messageText(messages[0])
	if !strings.Contains(text, "Paris is the capital of France.") {
		t.Error("Expected document text embedded in first-turn prompt")
	}
	if !strings.Contains(text, "User Question: What is the capital of France?") {
		t.Error("Expected question appended to first-turn prompt")
	}
}

func TestFollowUpTurnDoesNotResendDocument(t *testing.T) {
	chatter := &fakeChatter{answer: "Because the document says so."}
	g := NewGraph(chatter)

	history := []llms.ChatMessage{
		llms.HumanChatMessage{Content: "first question"},
		llms.AIChatMessage{Content: "first answer"},
	}

	state := State{
		DocumentText: "Paris is the capital of France.",
		Question:     "Why?",
		History:      history,
	}

	_, err := g.Invoke(context.Background(), state)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	messages := chatter.received[0]
	if len(messages) != 3 {
		t.Fatalf("Expected history plus bare question, got %d messages", len(messages))
	}

	last := messageText(messages[2])
	if last != "Why?" {
		t.Errorf("Expected bare question on follow-up turn, got %q", last)
	}
	for _, msg := range messages {
		if strings.Contains(messageText(msg), "BEGIN DOCUMENT") {
			t.Error("Document must not be re-sent on follow-up turns")
		}
	}
}

func TestHistoryAppendedExactlyOnce(t *testing.T) {
	chatter := &fakeChatter{answer: "answer"}
	g := NewGraph(chatter)

	state := State{DocumentText: "doc", Question: "q1"}

	final, err := g.Invoke(context.Background(), state)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(final.History) != 2 {
		t.Fatalf("Expected 2 turns after first ask, got %d", len(final.History))
	}

	// N轮问答后历史长度为2N且顺序保持
	for _, q := range []string{"q2", "q3"} {
		final.Question = q
		final, err = g.Invoke(context.Background(), final)
		if err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
	}
	if len(final.History) != 6 {
		t.Fatalf("Expected 6 turns after 3 asks, got %d", len(final.History))
	}

	wantQuestions := []string{"q1", "q2", "q3"}
	for i, q := range wantQuestions {
		user := final.History[i*2]
		if user.GetType() != llms.ChatMessageTypeHuman || user.GetContent() != q {
			t.Errorf("Turn %d: expected user message %q, got %s %q",
				i*2, q, user.GetType(), user.GetContent())
		}
		ai := final.History[i*2+1]
		if ai.GetType() != llms.ChatMessageTypeAI {
			t.Errorf("Turn %d: expected assistant message, got %s", i*2+1, ai.GetType())
		}
	}
}

func TestModelErrorLeavesHistoryUntouched(t *testing.T) {
	chatter := &fakeChatter{err: errors.New("api unavailable")}
	g := NewGraph(chatter)

	history := []llms.ChatMessage{
		llms.HumanChatMessage{Content: "q"},
		llms.AIChatMessage{Content: "a"},
	}
	state := State{DocumentText: "doc", Question: "q2", History: history}

	final, err := g.Invoke(context.Background(), state)
	if err == nil {
		t.Fatal("Expected model error to propagate")
	}
	if len(final.History) != 2 {
		t.Errorf("Expected history unchanged on failure, got %d turns", len(final.History))
	}
	if final.Answer != "" {
		t.Errorf("Expected no partial answer on failure, got %q", final.Answer)
	}
}

func TestLongDocumentTruncatedWithMarker(t *testing.T) {
	chatter := &fakeChatter{answer: "ok"}
	g := NewGraph(chatter)

	state := State{
		DocumentText: strings.Repeat("a", maxDocLengthForPrompt+500),
		Question:     "q",
	}

	_, err := g.Invoke(context.Background(), state)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	text := messageText(chatter.received[0][0])
	if !strings.Contains(text, truncationMarker) {
		t.Error("Expected truncation marker in composed prompt")
	}
	if strings.Contains(text, strings.Repeat("a", maxDocLengthForPrompt+1)) {
		t.Error("Expected document truncated to the configured limit")
	}
}
