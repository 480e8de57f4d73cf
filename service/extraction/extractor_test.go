package extraction

import (
	"context"
	"errors"
	"testing"
)

func TestExtractTxt(t *testing.T) {
	text, err := Extract(context.Background(), []byte("Paris is the capital of France.\n"), "txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "Paris is the capital of France.\n" {
		t.Errorf("Expected verbatim text, got %q", text)
	}
}

func TestExtractTxtUppercaseExtension(t *testing.T) {
	text, err := Extract(context.Background(), []byte("hello"), "TXT")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("Expected %q, got %q", "hello", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	for _, ext := range []string{"docx", "png", "exe", ""} {
		_, err := Extract(context.Background(), []byte("data"), ext)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Extension %q: expected ErrUnsupportedType, got %v", ext, err)
		}
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract(context.Background(), []byte("this is not a pdf"), "pdf")
	if err == nil {
		t.Fatal("Expected error for corrupt PDF")
	}

	var corrupt *CorruptDocumentError
	if !errors.As(err, &corrupt) {
		t.Errorf("Expected CorruptDocumentError, got %T: %v", err, err)
	}
}

func TestSupported(t *testing.T) {
	for ext, want := range map[string]bool{
		"txt": true,
		"pdf": true,
		"PDF": true,
		"doc": false,
		"":    false,
	} {
		if got := Supported(ext); got != want {
			t.Errorf("Supported(%q) = %v, want %v", ext, got, want)
		}
	}
}
