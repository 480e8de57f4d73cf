package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-assistant-backend/request"
	"doc-assistant-backend/response"
	"doc-assistant-backend/service/llm"
)

// Challenge 基于当前文档生成固定数量的理解型挑战题
func (ctl *Controller) Challenge(c *gin.Context) {
	s, ok := ctl.activeDocument()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{
			Detail: ErrNoDocument.Error(),
		})
		return
	}

	questions, err := ctl.Generator.GenerateChallenge(c.Request.Context(), s.Text())
	if err != nil {
		slog.Error(ErrGenerateChallenge.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: challengeFailureDetail(err),
		})
		return
	}

	if len(questions) != llm.DefaultChallengeCount {
		slog.Error("Challenge question count mismatch",
			"expected", llm.DefaultChallengeCount,
			"received", len(questions),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: fmt.Sprintf("could not generate the required number of challenge questions, received %d", len(questions)),
		})
		return
	}

	c.JSON(http.StatusOK, response.ChallengeResponse{
		Questions: questions,
	})
}

// Evaluate 评估用户对某道挑战题的回答
func (ctl *Controller) Evaluate(c *gin.Context) {
	var req request.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
			Detail: "original_question and user_answer are required and must not be empty",
		})
		return
	}

	s, ok := ctl.activeDocument()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{
			Detail: ErrNoDocument.Error(),
		})
		return
	}

	result, err := ctl.Generator.EvaluateAnswer(c.Request.Context(), s.Text(), req.OriginalQuestion, req.UserAnswer)
	if err != nil {
		slog.Error(ErrEvaluateAnswer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: challengeFailureDetail(err),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// challengeFailureDetail 形状错误时附带原始返回文本便于排查
func challengeFailureDetail(err error) string {
	var malformed *llm.MalformedResponseError
	if errors.As(err, &malformed) {
		return fmt.Sprintf("%s; raw response: %s", malformed.Reason, malformed.Raw)
	}
	return err.Error()
}
