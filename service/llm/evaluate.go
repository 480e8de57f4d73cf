package llm

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

const (
	maxDocLengthForEval = 50000

	ambiguousCorrectnessNote = " (Note: 'is_correct' field from AI was not a clear boolean.)"
)

//go:embed prompts/evaluate.txt
var evaluatePrompt string

// EvaluationResult 一次答案评估的结果
// CorrectnessAmbiguous 标记模型返回的is_correct无法明确判定、
// IsCorrect被默认置为false的情况，避免无声误判
type EvaluationResult struct {
	IsCorrect            bool   `json:"is_correct"`
	Feedback             string `json:"feedback"`
	Justification        string `json:"justification"`
	CorrectnessAmbiguous bool   `json:"correctness_ambiguous,omitempty"`
}

// EvaluateAnswer 基于文档评估用户对某道题的回答
func (c *Client) EvaluateAnswer(ctx context.Context, documentText, question, answer string) (*EvaluationResult, error) {
	tmpl, err := template.New("evaluate").Parse(evaluatePrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	data := struct {
		Document string
		Question string
		Answer   string
	}{
		Document: truncate(documentText, maxDocLengthForEval),
		Question: question,
		Answer:   answer,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %v", err)
	}

	raw, err := c.Complete(ctx, buf.String(), true)
	if err != nil {
		return nil, err
	}

	return parseEvaluationResponse(raw)
}

func parseEvaluationResponse(raw string) (*EvaluationResult, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &MalformedResponseError{
			Reason: "could not decode JSON response from assistant",
			Raw:    raw,
		}
	}

	for _, key := range []string{"is_correct", "feedback", "justification"} {
		if _, ok := parsed[key]; !ok {
			return nil, &MalformedResponseError{
				Reason: fmt.Sprintf("response is missing the %q field", key),
				Raw:    raw,
			}
		}
	}

	result := &EvaluationResult{
		Feedback:      asString(parsed["feedback"]),
		Justification: asString(parsed["justification"]),
	}

	switch v := parsed["is_correct"].(type) {
	case bool:
		result.IsCorrect = v
	case string:
		switch strings.ToLower(v) {
		case "true":
			result.IsCorrect = true
		case "false":
			result.IsCorrect = false
		default:
			result.CorrectnessAmbiguous = true
		}
	default:
		result.CorrectnessAmbiguous = true
	}

	if result.CorrectnessAmbiguous {
		result.IsCorrect = false
		result.Feedback += ambiguousCorrectnessNote
	}

	return result, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
