package document

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-assistant-backend/model"
	"doc-assistant-backend/service/extraction"
	"doc-assistant-backend/service/persistence"
	"doc-assistant-backend/service/session"
)

// Summarizer 入库流程依赖的摘要生成能力
type Summarizer interface {
	Summarize(ctx context.Context, documentText string) (string, error)
}

// Ingestor 文档上传入库流程：落盘、抽取、会话重置、持久化、摘要
type Ingestor struct {
	Registry   *session.Registry
	Summarizer Summarizer
	Store      persistence.Store
	UploadDir  string
}

// IngestResult 入库结果
// 摘要失败不阻断入库，错误记录在SummaryErr中由调用方决定响应状态
type IngestResult struct {
	Session    *session.Session
	Summary    string
	SummaryErr error
}

// Ingest 处理一次文档上传
// 抽取失败时删除已落盘的文件，避免遗留孤儿文件
func (i *Ingestor) Ingest(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !extraction.Supported(ext) {
		return nil, extraction.ErrUnsupportedType
	}

	if err := os.MkdirAll(i.UploadDir, 0o755); err != nil {
		return nil, err
	}

	filePath := filepath.Join(i.UploadDir, filepath.Base(filename))
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, err
	}

	text, err := extraction.Extract(ctx, data, ext)
	if err != nil {
		i.removeUpload(filePath)
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		i.removeUpload(filePath)
		return nil, extraction.ErrEmptyExtraction
	}

	// 新文档替换当前活动会话，历史清空并分配新会话ID
	s := i.Registry.Reset(filename, text)

	doc := &model.Document{
		Filename:        filename,
		Text:            text,
		FilePath:        filePath,
		UploadTimestamp: time.Now().UTC(),
		TextLength:      len(text),
	}
	i.Store.SaveDocument(ctx, doc)

	result := &IngestResult{Session: s}

	summary, err := i.Summarizer.Summarize(ctx, text)
	if err != nil {
		slog.Error("Failed to generate summary", "filename", filename, "err", err)
		result.SummaryErr = err
		return result, nil
	}

	s.SetSummary(summary)
	result.Summary = summary

	doc.Summary = summary
	i.Store.SaveDocument(ctx, doc)

	return result, nil
}

func (i *Ingestor) removeUpload(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove uploaded file", "path", filePath, "err", err)
	}
}
