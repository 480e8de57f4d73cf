package llm

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"
)

const (
	// DefaultChallengeCount 每次出题的固定数量
	DefaultChallengeCount = 3

	maxDocLengthForChallenge = 50000

	malformedQuestionText = "Error: Malformed question data."
)

//go:embed prompts/challenge.txt
var challengePrompt string

// ChallengeQuestion 单道理解型挑战题
// ID取模型给出的值，缺失时回退为序号
type ChallengeQuestion struct {
	ID   any    `json:"id"`
	Text string `json:"text"`
}

// GenerateChallenge 基于文档内容生成固定数量的挑战题
// 模型返回形状不符时以MalformedResponseError携带原始文本返回；
// 单个题目缺失text字段时以占位题替代而不丢弃整批；
// 题目数量与要求不符只记录日志，由调用方决定如何处理
func (c *Client) GenerateChallenge(ctx context.Context, documentText string) ([]ChallengeQuestion, error) {
	tmpl, err := template.New("challenge").Parse(challengePrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	data := struct {
		NumQuestions int
		Document     string
	}{
		NumQuestions: DefaultChallengeCount,
		Document:     truncate(documentText, maxDocLengthForChallenge),
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %v", err)
	}

	raw, err := c.Complete(ctx, buf.String(), true)
	if err != nil {
		return nil, err
	}

	questions, err := parseChallengeResponse(raw)
	if err != nil {
		return nil, err
	}

	if len(questions) != DefaultChallengeCount {
		slog.Warn("Unexpected challenge question count",
			"expected", DefaultChallengeCount,
			"received", len(questions),
			"raw", raw,
		)
	}

	return questions, nil
}

func parseChallengeResponse(raw string) ([]ChallengeQuestion, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &MalformedResponseError{
			Reason: "could not decode JSON response from assistant",
			Raw:    raw,
		}
	}

	entries, ok := parsed["questions"].([]any)
	if !ok {
		return nil, &MalformedResponseError{
			Reason: `response is missing the "questions" list`,
			Raw:    raw,
		}
	}

	questions := make([]ChallengeQuestion, 0, len(entries))
	for i, entry := range entries {
		q, ok := entry.(map[string]any)
		if !ok {
			slog.Warn("Malformed question object in model response", "index", i)
			questions = append(questions, ChallengeQuestion{ID: i + 1, Text: malformedQuestionText})
			continue
		}

		text, ok := q["text"].(string)
		if !ok {
			slog.Warn("Question object missing text field", "index", i)
			questions = append(questions, ChallengeQuestion{ID: i + 1, Text: malformedQuestionText})
			continue
		}

		id := q["id"]
		if id == nil {
			id = i + 1
		}
		questions = append(questions, ChallengeQuestion{ID: id, Text: text})
	}

	return questions, nil
}
