package request

// EvaluateRequest 答案评估请求，两个字段都不允许为空
type EvaluateRequest struct {
	OriginalQuestion string `json:"original_question" binding:"required"`
	UserAnswer       string `json:"user_answer" binding:"required"`
}
