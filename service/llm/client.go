package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"doc-assistant-backend/config"
	"doc-assistant-backend/utils"
)

const (
	// BaseURL Gemini的OpenAI兼容端点
	BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	defaultTemperature = 0.7
)

// ErrMissingAPIKey API凭证未配置，进程启动时即失败
var ErrMissingAPIKey = errors.New("model API key is not configured")

// GenerationError 模型调用失败，不重试，包装一次后上抛
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generative api error: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MalformedResponseError 模型返回的JSON不符合约定形状
// 保留原始文本用于诊断
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// Client 生成式模型客户端，摘要、出题、评估三处调用共享
type Client struct {
	model llms.Model
	name  string
}

func NewClient(cfg config.ModelConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// 配置 300s 超时时间处理长文档的模型调用
	httpClient := utils.NewHTTPClient(
		utils.WithTimeout(300 * time.Second),
	)

	model, err := openai.New(
		openai.WithModel(cfg.Name),
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(BaseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %v", err)
	}

	return &Client{
		model: model,
		name:  cfg.Name,
	}, nil
}

// Complete 单轮生成，wantJSON为真时启用结构化输出模式
// 调用方需在提示词中约定具体的JSON形状
func (c *Client) Complete(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(defaultTemperature),
	}
	if wantJSON {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, opts...)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return resp, nil
}

// Converse 多轮对话生成，供对话图调用
func (c *Client) Converse(ctx context.Context, messages []llms.MessageContent) (string, error) {
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(defaultTemperature),
	)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Err: errors.New("model returned no choices")}
	}
	return resp.Choices[0].Content, nil
}

// truncate 限制送入模型的文本长度以控制token消耗
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	slog.Info("Document text truncated for model call",
		"original_length", len(text),
		"limit", limit,
	)
	return text[:limit]
}
