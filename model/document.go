package model

import (
	"encoding/json"
	"time"
)

// Document 存储上传文档的元数据与抽取文本，以文件名为唯一键
type Document struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Filename        string    `gorm:"not null;uniqueIndex" json:"filename"`
	Text            string    `gorm:"type:longtext" json:"text"`
	Summary         string    `gorm:"type:text" json:"summary"`
	FilePath        string    `json:"file_path"`
	UploadTimestamp time.Time `gorm:"index:idx_upload_ts,sort:desc" json:"upload_timestamp"`
	TextLength      int       `json:"text_length"`
}

func (Document) TableName() string {
	return "document"
}

// ChatRecord 存储会话的完整聊天记录
// 以 (session_id, document_filename) 为联合唯一键，整体覆盖写入
type ChatRecord struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	SessionID        string          `gorm:"not null;uniqueIndex:idx_session_document" json:"session_id"`
	DocumentFilename string          `gorm:"not null;uniqueIndex:idx_session_document" json:"document_filename"`
	History          json.RawMessage `gorm:"type:json" json:"history"`
	Timestamp        time.Time       `gorm:"index:idx_chat_ts,sort:desc" json:"timestamp"`
	MessageCount     int             `json:"message_count"`
}

func (ChatRecord) TableName() string {
	return "chat_record"
}
