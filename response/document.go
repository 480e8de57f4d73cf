package response

import "doc-assistant-backend/service/llm"

// ErrorResponse 统一的错误负载，detail为人类可读的失败原因
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
}

// UploadPartialResponse 文本抽取成功但摘要生成失败时的207响应
type UploadPartialResponse struct {
	Message           string `json:"message"`
	Filename          string `json:"filename"`
	TextExtractStatus string `json:"text_extract_status"`
	SummaryStatus     string `json:"summary_status"`
	SummaryError      string `json:"summary_error"`
}

type AskResponse struct {
	Answer        string `json:"answer"`
	Justification string `json:"justification"`
}

type SummaryResponse struct {
	Summary  string `json:"summary"`
	Filename string `json:"filename"`
}

type ChallengeResponse struct {
	Questions []llm.ChallengeQuestion `json:"questions"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status        string         `json:"status"`
	DocumentStore map[string]any `json:"document_store"`
	Persistence   map[string]any `json:"persistence"`
}
