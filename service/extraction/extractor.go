package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

var (
	// ErrUnsupportedType 仅支持 txt 与 pdf
	ErrUnsupportedType = errors.New("unsupported file type, please upload a TXT or PDF file")

	// ErrEmptyExtraction 全文抽取结果为空（如扫描版PDF）
	ErrEmptyExtraction = errors.New("could not extract text from the document, it might be empty or scanned (image-based)")
)

// CorruptDocumentError PDF无法解析或页数为零
type CorruptDocumentError struct {
	Cause error
}

func (e *CorruptDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("error reading PDF (possibly encrypted or corrupted): %v", e.Cause)
	}
	return "PDF file has no pages or is corrupted"
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Cause
}

// Supported 判断扩展名是否可被抽取
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case "txt", "pdf":
		return true
	}
	return false
}

// Extract 将上传文件内容抽取为纯文本
func Extract(ctx context.Context, data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case "txt":
		return string(data), nil
	case "pdf":
		return extractPDF(ctx, data)
	default:
		return "", ErrUnsupportedType
	}
}

// extractPDF 逐页抽取并拼接，空页不产出内容也不报错
func extractPDF(ctx context.Context, data []byte) (string, error) {
	loader := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))

	docs, err := loader.Load(ctx)
	if err != nil {
		return "", &CorruptDocumentError{Cause: err}
	}
	if len(docs) == 0 {
		return "", &CorruptDocumentError{}
	}

	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.PageContent)
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyExtraction
	}
	return text, nil
}
