package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"doc-assistant-backend/response"
	"doc-assistant-backend/service/extraction"
)

// Upload 处理文档上传：抽取文本、重置会话并生成摘要
// 摘要失败不影响入库，以207返回部分成功
func (ctl *Controller) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
			Detail: ErrParseRequest.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error(ErrUploadDocument.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: ErrUploadDocument.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error(ErrUploadDocument.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Detail: ErrUploadDocument.Error(),
		})
		return
	}

	result, err := ctl.Ingestor.Ingest(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		slog.Error("Failed to ingest document", "filename", fileHeader.Filename, "err", err)
		c.AbortWithStatusJSON(ingestStatus(err), response.ErrorResponse{
			Detail: err.Error(),
		})
		return
	}

	if result.SummaryErr != nil {
		c.JSON(http.StatusMultiStatus, response.UploadPartialResponse{
			Message:           "Document uploaded and text extracted, but summary generation failed.",
			Filename:          fileHeader.Filename,
			TextExtractStatus: "Success",
			SummaryStatus:     "Failed",
			SummaryError:      result.SummaryErr.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.UploadResponse{
		Message:  "Document uploaded, processed, and summarized successfully.",
		Filename: fileHeader.Filename,
		Summary:  result.Summary,
	})
}

// ingestStatus 抽取类失败映射为400，其余按内部错误处理
func ingestStatus(err error) int {
	var corrupt *extraction.CorruptDocumentError
	switch {
	case errors.Is(err, extraction.ErrUnsupportedType),
		errors.Is(err, extraction.ErrEmptyExtraction),
		errors.As(err, &corrupt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ctl *Controller) Summary(c *gin.Context) {
	s, ok := ctl.activeDocument()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{
			Detail: ErrNoDocument.Error(),
		})
		return
	}

	summary := s.Summary()
	if summary == "" {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{
			Detail: ErrNoSummary.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SummaryResponse{
		Summary:  summary,
		Filename: s.Filename,
	})
}

func (ctl *Controller) Root(c *gin.Context) {
	filename := "None"
	if s, ok := ctl.Registry.Active(); ok {
		filename = s.Filename
	}

	c.JSON(http.StatusOK, response.RootResponse{
		Message: "Backend is running. Current document: " + filename,
	})
}

// Health 永远返回200，持久化不可用时在负载中体现而非报错
func (ctl *Controller) Health(c *gin.Context) {
	docStore := map[string]any{
		"has_document": false,
	}
	if s, ok := ctl.Registry.Active(); ok {
		docStore["has_document"] = s.Text() != ""
		docStore["filename"] = s.Filename
		docStore["session_id"] = s.ID
		docStore["chat_messages"] = s.HistoryLen()
	}

	c.JSON(http.StatusOK, response.HealthResponse{
		Status:        "ok",
		DocumentStore: docStore,
		Persistence:   ctl.Store.Health(c.Request.Context()),
	})
}
