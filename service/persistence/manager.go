package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/tmc/langchaingo/llms"

	"doc-assistant-backend/dao"
	"doc-assistant-backend/model"
)

const (
	writeAttempts = 3
	writeDelay    = 200 * time.Millisecond
)

// Store 可选的持久化存储能力
// 所有操作尽力而为：存储不可用时返回失败指示，从不报错中断业务流程
type Store interface {
	IsAvailable() bool
	SaveDocument(ctx context.Context, doc *model.Document) bool
	Document(ctx context.Context, filename string) (*model.Document, bool)
	SaveChatHistory(ctx context.Context, sessionID, filename string, history []llms.ChatMessage) bool
	ChatHistory(ctx context.Context, sessionID, filename string) ([]llms.ChatMessage, bool)
	ClearChatHistory(ctx context.Context, sessionID, filename string) bool
	RecentDocuments(ctx context.Context, limit int) []model.Document
	Health(ctx context.Context) map[string]any
}

// Manager 基于数据库的Store实现
// 启动时只尝试连接一次，失败后进入纯内存模式
type Manager struct {
	available bool
}

var _ Store = &Manager{}

// Connect 尝试连接持久化存储，DSN为空或连接失败时降级为纯内存模式
func (m *Manager) Connect(dsn string) bool {
	if dsn == "" {
		slog.Info("Database DSN not configured, running in memory-only mode")
		return false
	}

	if err := dao.Init(dsn); err != nil {
		slog.Error("Failed to connect to database, running in memory-only mode", "err", err)
		return false
	}

	m.available = true
	slog.Info("Connected to database")
	return true
}

func (m *Manager) IsAvailable() bool {
	return m.available
}

func (m *Manager) SaveDocument(ctx context.Context, doc *model.Document) bool {
	if !m.available {
		return false
	}

	err := retry.Do(
		func() error {
			return dao.UpsertDocument(ctx, doc)
		},
		retry.Attempts(writeAttempts),
		retry.Delay(writeDelay),
		retry.Context(ctx),
	)
	if err != nil {
		slog.Error("Failed to store document", "filename", doc.Filename, "err", err)
		return false
	}
	return true
}

func (m *Manager) Document(ctx context.Context, filename string) (*model.Document, bool) {
	if !m.available {
		return nil, false
	}

	doc, err := dao.GetDocumentByFilename(ctx, filename)
	if err != nil {
		slog.Error("Failed to retrieve document", "filename", filename, "err", err)
		return nil, false
	}
	if doc == nil {
		return nil, false
	}
	return doc, true
}

func (m *Manager) SaveChatHistory(ctx context.Context, sessionID, filename string, history []llms.ChatMessage) bool {
	if !m.available {
		return false
	}

	serialized, err := marshalHistory(history)
	if err != nil {
		slog.Error("Failed to serialize chat history", "session_id", sessionID, "err", err)
		return false
	}

	record := &model.ChatRecord{
		SessionID:        sessionID,
		DocumentFilename: filename,
		History:          serialized,
		Timestamp:        time.Now().UTC(),
		MessageCount:     len(history),
	}

	err = retry.Do(
		func() error {
			return dao.UpsertChatRecord(ctx, record)
		},
		retry.Attempts(writeAttempts),
		retry.Delay(writeDelay),
		retry.Context(ctx),
	)
	if err != nil {
		slog.Error("Failed to store chat history", "session_id", sessionID, "err", err)
		return false
	}
	return true
}

// ChatHistory 读取会话历史，未连接与记录不存在同样返回失败指示，
// 调用方一律回退到内存中的历史
func (m *Manager) ChatHistory(ctx context.Context, sessionID, filename string) ([]llms.ChatMessage, bool) {
	if !m.available {
		return nil, false
	}

	record, err := dao.GetChatRecord(ctx, sessionID, filename)
	if err != nil {
		slog.Error("Failed to retrieve chat history", "session_id", sessionID, "err", err)
		return nil, false
	}
	if record == nil {
		return nil, false
	}

	history, err := unmarshalHistory(record.History)
	if err != nil {
		slog.Error("Failed to deserialize chat history", "session_id", sessionID, "err", err)
		return nil, false
	}
	return history, true
}

func (m *Manager) ClearChatHistory(ctx context.Context, sessionID, filename string) bool {
	if !m.available {
		return false
	}

	if err := dao.DeleteChatRecord(ctx, sessionID, filename); err != nil {
		slog.Error("Failed to clear chat history", "session_id", sessionID, "err", err)
		return false
	}
	return true
}

func (m *Manager) RecentDocuments(ctx context.Context, limit int) []model.Document {
	if !m.available {
		return nil
	}

	docs, err := dao.GetRecentDocuments(ctx, limit)
	if err != nil {
		slog.Error("Failed to retrieve recent documents", "err", err)
		return nil
	}
	return docs
}

func (m *Manager) Health(ctx context.Context) map[string]any {
	if !m.available {
		return map[string]any{
			"status":  "disconnected",
			"message": "database not connected",
		}
	}

	if err := dao.Ping(ctx); err != nil {
		return map[string]any{
			"status":  "error",
			"message": err.Error(),
		}
	}

	docCount, err := dao.CountDocuments(ctx)
	if err != nil {
		return map[string]any{
			"status":  "error",
			"message": err.Error(),
		}
	}

	chatCount, err := dao.CountChatRecords(ctx)
	if err != nil {
		return map[string]any{
			"status":  "error",
			"message": err.Error(),
		}
	}

	return map[string]any{
		"status":           "healthy",
		"documents_stored": docCount,
		"chat_sessions":    chatCount,
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}
}
