package romloader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// extractFromZIP extracts the first ROM file from a ZIP archive
func (l *Loader) extractFromZIP(src io.ReaderAt, size int64) ([]byte, string, error) {
	r, err := zip.NewReader(src, size)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !isROMFile(f.Name, l.Extensions) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		data, err := l.limitedRead(rc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoROMFile
}
