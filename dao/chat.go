package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doc-assistant-backend/model"
)

// UpsertChatRecord 以 (session_id, document_filename) 为键覆盖写入聊天记录
func UpsertChatRecord(ctx context.Context, record *model.ChatRecord) error {
	return DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "document_filename"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

func GetChatRecord(ctx context.Context, sessionID, filename string) (*model.ChatRecord, error) {
	var record model.ChatRecord
	if err := DB.WithContext(ctx).
		Where("session_id = ? AND document_filename = ?", sessionID, filename).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func DeleteChatRecord(ctx context.Context, sessionID, filename string) error {
	return DB.WithContext(ctx).
		Where("session_id = ? AND document_filename = ?", sessionID, filename).
		Delete(&model.ChatRecord{}).Error
}

func CountChatRecords(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&model.ChatRecord{}).Count(&count).Error
	return count, err
}
