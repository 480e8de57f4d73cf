package controller

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"doc-assistant-backend/response"
	"doc-assistant-backend/service/conversation"
)

// 答案本身即包含论证，不单独结构化提取
const askJustificationNote = "Justification is part of the conversational answer. Review history for full context."

// Ask 针对当前文档的一轮问答，问题经query参数传入
// 同一会话的问答串行执行；持久化存储可达时历史以其为准
func (ctl *Controller) Ask(c *gin.Context) {
	s, ok := ctl.activeDocument()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{
			Detail: ErrNoDocument.Error(),
		})
		return
	}

	question := c.Query("question")
	if strings.TrimSpace(question) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
			Detail: ErrEmptyQuestion.Error(),
		})
		return
	}

	s.Lock()
	defer s.Unlock()

	ctx := c.Request.Context()

	// 可达时先从持久化存储刷新历史，覆盖内存中的副本
	if stored, ok := ctl.Store.ChatHistory(ctx, s.ID, s.Filename); ok {
		s.SetHistory(stored)
	}

	state := conversation.State{
		DocumentText: s.Text(),
		Question:     question,
		History:      s.HistorySnapshot(),
	}

	final, err := ctl.Graph.Invoke(ctx, state)
	if err != nil {
		slog.Error(ErrGenerateAnswer.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: ErrGenerateAnswer.Error() + ": " + err.Error(),
		})
		return
	}

	s.SetHistory(final.History)
	ctl.Store.SaveChatHistory(ctx, s.ID, s.Filename, final.History)

	c.JSON(http.StatusOK, response.AskResponse{
		Answer:        final.Answer,
		Justification: askJustificationNote,
	})
}
