package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doc-assistant-backend/model"
)

// UpsertDocument 以文件名为键覆盖写入文档记录
func UpsertDocument(ctx context.Context, doc *model.Document) error {
	return DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "filename"}},
			UpdateAll: true,
		}).
		Create(doc).Error
}

func GetDocumentByFilename(ctx context.Context, filename string) (*model.Document, error) {
	var doc model.Document
	if err := DB.WithContext(ctx).
		Where("filename = ?", filename).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func GetRecentDocuments(ctx context.Context, limit int) ([]model.Document, error) {
	var docs []model.Document
	if err := DB.WithContext(ctx).
		Order("upload_timestamp DESC").
		Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&model.Document{}).Count(&count).Error
	return count, err
}
