package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseEvaluationResponseBoolean(t *testing.T) {
	result, err := parseEvaluationResponse(`{
		"is_correct": true,
		"feedback": "Correct!",
		"justification": "Section 2 states so."
	}`)
	if err != nil {
		t.Fatalf("parseEvaluationResponse failed: %v", err)
	}
	if !result.IsCorrect {
		t.Error("Expected is_correct=true")
	}
	if result.CorrectnessAmbiguous {
		t.Error("Expected unambiguous result for a real boolean")
	}
	if result.Feedback != "Correct!" {
		t.Errorf("Unexpected feedback: %q", result.Feedback)
	}
}

func TestParseEvaluationResponseStringCoercion(t *testing.T) {
	for raw, want := range map[string]bool{
		`{"is_correct": "true", "feedback": "f", "justification": "j"}`:  true,
		`{"is_correct": "False", "feedback": "f", "justification": "j"}`: false,
	} {
		result, err := parseEvaluationResponse(raw)
		if err != nil {
			t.Fatalf("parseEvaluationResponse failed: %v", err)
		}
		if result.IsCorrect != want {
			t.Errorf("Expected coerced is_correct=%v, got %v", want, result.IsCorrect)
		}
		if result.CorrectnessAmbiguous {
			t.Error("Expected clear true/false strings to coerce unambiguously")
		}
	}
}

func TestParseEvaluationResponseAmbiguousDefaultsFalseAndFlags(t *testing.T) {
	for _, raw := range []string{
		`{"is_correct": "maybe", "feedback": "f", "justification": "j"}`,
		`{"is_correct": 1, "feedback": "f", "justification": "j"}`,
	} {
		result, err := parseEvaluationResponse(raw)
		if err != nil {
			t.Fatalf("parseEvaluationResponse failed: %v", err)
		}
		if result.IsCorrect {
			t.Error("Expected ambiguous is_correct to default to false")
		}
		if !result.CorrectnessAmbiguous {
			t.Error("Expected ambiguity to be flagged distinctly")
		}
		if !strings.Contains(result.Feedback, "not a clear boolean") {
			t.Errorf("Expected feedback note about ambiguity, got %q", result.Feedback)
		}
	}
}

func TestParseEvaluationResponseMissingKey(t *testing.T) {
	_, err := parseEvaluationResponse(`{"is_correct": true, "feedback": "f"}`)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestParseEvaluationResponseInvalidJSON(t *testing.T) {
	_, err := parseEvaluationResponse("I think the answer is correct.")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T: %v", err, err)
	}
	if malformed.Raw != "I think the answer is correct." {
		t.Errorf("Expected raw text preserved, got %q", malformed.Raw)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 100)
	if got := truncate(long, 10); len(got) != 10 {
		t.Errorf("Expected truncation to 10 chars, got %d", len(got))
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected short text untouched, got %q", got)
	}
}
