package romloader

import (
	"archive/tar"
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// tarSuffixes name compressed tarballs whose tar header may predate ustar.
var tarSuffixes = []string{".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz2", ".tar.zst"}

// streamSuffixes are stripped from a plain compressed ROM's name.
var streamSuffixes = map[formatType]string{
	formatGzip:  ".gz",
	formatXZ:    ".xz",
	formatBzip2: ".bz2",
	formatZstd:  ".zst",
}

// decompress wraps r in the decoder for format. The returned close
// function releases decoder resources.
func decompress(format formatType, r io.Reader) (io.Reader, func(), error) {
	switch format {
	case formatGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gr, func() { gr.Close() }, nil
	case formatXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xr, func() {}, nil
	case formatBzip2:
		return bzip2.NewReader(r), func() {}, nil
	case formatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	}
	return nil, nil, ErrUnsupportedFormat
}

// extractFromStream extracts the ROM from a compressed stream. A stream
// holding a tarball is searched for the first ROM file; otherwise the
// decompressed content is the ROM.
func (l *Loader) extractFromStream(format formatType, r io.Reader, name string) ([]byte, string, error) {
	dr, done, err := decompress(format, r)
	if err != nil {
		return nil, "", err
	}
	defer done()

	br := bufio.NewReaderSize(dr, headerSize)
	block, err := br.Peek(headerSize)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("failed to decompress: %w", err)
	}
	if isTarHeader(block) || hasTarSuffix(name) {
		return l.extractFromTar(br)
	}

	data, err := l.limitedRead(br)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress: %w", err)
	}

	suffix := streamSuffixes[format]
	if strings.HasSuffix(strings.ToLower(name), suffix) {
		name = name[:len(name)-len(suffix)]
	}
	return data, name, nil
}

func hasTarSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range tarSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// extractFromTar extracts the first ROM file from a tar archive
func (l *Loader) extractFromTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar entry: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		if !isROMFile(header.Name, l.Extensions) {
			continue
		}

		data, err := l.limitedRead(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s from tar: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
