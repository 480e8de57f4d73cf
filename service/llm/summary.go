package llm

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
)

const (
	defaultMaxSummaryWords = 150
	maxDocLengthForSummary = 20000
)

//go:embed prompts/summary.txt
var summaryPrompt string

// Summarize 生成文档摘要，返回模型原始文本
func (c *Client) Summarize(ctx context.Context, documentText string) (string, error) {
	tmpl, err := template.New("summary").Parse(summaryPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	data := struct {
		MaxWords int
		Document string
	}{
		MaxWords: defaultMaxSummaryWords,
		Document: truncate(documentText, maxDocLengthForSummary),
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %v", err)
	}

	return c.Complete(ctx, buf.String(), false)
}
