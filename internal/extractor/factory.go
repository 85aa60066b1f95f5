package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor pulls plain text out of one document format.
type Extractor interface {
	Extract(reader io.Reader) (string, error)
}

// Factory selects the extractor for a file based on its extension.
type Factory struct{}

// NewFactory creates an extractor factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ForFile returns the extractor for the given path, plus the normalized
// extension it decided on.
func (f *Factory) ForFile(path string) (Extractor, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, err := f.ForExtension(ext)
	return e, ext, err
}

// ForExtension returns the extractor for a normalized (lowercase, dotted)
// extension.
func (f *Factory) ForExtension(ext string) (Extractor, error) {
	if !f.IsSupported(ext) {
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}

	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".xlsx":
		return &ExcelExtractor{}, nil
	default:
		// Plain text handles .txt, .csv, .log, .md and unknown types.
		return &TextExtractor{}, nil
	}
}

// IsSupported rejects binary and media formats that cannot yield text.
func (f *Factory) IsSupported(ext string) bool {
	switch ext {
	case ".exe", ".dll", ".so", ".dylib", ".bin":
		return false
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp":
		return false
	case ".mp3", ".mp4", ".wav", ".avi", ".mov", ".mkv":
		return false
	case ".zip", ".tar", ".gz", ".rar", ".7z", ".iso":
		return false
	default:
		return true
	}
}
