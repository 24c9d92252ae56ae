// Package romloader handles loading ROM files from various sources,
// including compressed archives (ZIP, 7z, RAR, tar) and compressed
// streams (gzip, xz, bzip2, zstd).
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	emucore "github.com/user-none/goretro/api"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
	magicXZ     = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	magicBzip2  = []byte{0x42, 0x5A, 0x68} // "BZh"
	magicZstd   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicTar    = []byte("ustar")
)

// tarMagicOffset is where the ustar magic sits inside a tar header block.
const tarMagicOffset = 257

// headerSize is enough to see every magic, including tar's.
const headerSize = 512

// DefaultMaxSize is the ROM size limit used when a Loader has none set.
const DefaultMaxSize = 8 * 1024 * 1024

// ErrNoROMFile is returned when no ROM file is found in an archive
var ErrNoROMFile = errors.New("no ROM file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrNoContent is returned for a game image with neither path nor data.
var ErrNoContent = errors.New("game has no path or data")

// formatType represents the detected file format
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
	formatXZ
	formatBzip2
	formatZstd
	formatTar
)

// Loader extracts ROM images. Extensions lists the ROM file extensions to
// look for inside archives, with or without a leading dot. MaxSize caps
// the size of the extracted ROM; zero means DefaultMaxSize.
type Loader struct {
	Extensions []string
	MaxSize    int64
}

// New creates a Loader for the given extensions and size limit.
func New(extensions []string, maxSize int64) *Loader {
	return &Loader{Extensions: extensions, MaxSize: maxSize}
}

// Load reads a ROM from a file path using the default size limit.
func Load(path string, extensions []string) ([]byte, string, error) {
	return New(extensions, 0).Load(path)
}

// LoadGame resolves the ROM bytes of a game image using the default size
// limit.
func LoadGame(game emucore.GameImage, extensions []string) ([]byte, string, error) {
	return New(extensions, 0).LoadGame(game)
}

func (l *Loader) maxSize() int64 {
	if l.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return l.MaxSize
}

// Load reads a ROM from a file path. It auto-detects compressed archives
// via magic bytes and extracts the first file matching one of the loader's
// extensions. A file that is not an archive must carry a ROM extension.
//
// Returns the ROM data, the filename (basename only, useful for display),
// and any error.
func (l *Loader) Load(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat file: %w", err)
	}

	header, err := readHeader(f)
	if err != nil {
		return nil, "", err
	}

	format := detectFormat(header, path, l.Extensions)
	if format == formatUnknown {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return l.extract(format, f, info.Size(), filepath.Base(path))
}

// LoadGame resolves the ROM bytes of a game image. In-memory data is
// preferred over the path. Archives in either form are extracted; plain
// in-memory data is copied so the result outlives the borrowed view.
func (l *Loader) LoadGame(game emucore.GameImage) ([]byte, string, error) {
	path, hasPath := game.Path()
	if !game.HasData() {
		if !hasPath {
			return nil, "", ErrNoContent
		}
		return l.Load(path)
	}

	data := game.Data()
	name := ""
	if hasPath {
		name = filepath.Base(path)
	}

	header := data
	if len(header) > headerSize {
		header = header[:headerSize]
	}
	format := detectFormat(header, name, l.Extensions)
	if format == formatRaw || format == formatUnknown {
		if int64(len(data)) > l.maxSize() {
			return nil, "", ErrFileTooLarge
		}
		return bytes.Clone(data), name, nil
	}
	return l.extract(format, bytes.NewReader(data), int64(len(data)), name)
}

func (l *Loader) extract(format formatType, src io.ReaderAt, size int64, name string) ([]byte, string, error) {
	switch format {
	case formatRaw:
		data, err := l.limitedRead(io.NewSectionReader(src, 0, size))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read ROM: %w", err)
		}
		return data, name, nil

	case formatZIP:
		return l.extractFromZIP(src, size)

	case format7z:
		return l.extractFrom7z(src, size)

	case formatRAR:
		return l.extractFromRAR(io.NewSectionReader(src, 0, size))

	case formatTar:
		return l.extractFromTar(io.NewSectionReader(src, 0, size))

	case formatGzip, formatXZ, formatBzip2, formatZstd:
		return l.extractFromStream(format, io.NewSectionReader(src, 0, size), name)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func readHeader(r io.ReaderAt) ([]byte, error) {
	header := make([]byte, headerSize)
	n, err := r.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return header[:n], nil
}

// isTarHeader reports whether block starts with a ustar header.
func isTarHeader(block []byte) bool {
	end := tarMagicOffset + len(magicTar)
	return len(block) >= end && bytes.Equal(block[tarMagicOffset:end], magicTar)
}

// detectFormat determines the file format based on magic bytes and extension.
// The extensions parameter lists valid ROM file extensions (e.g. []string{".sms"}).
func detectFormat(header []byte, path string, extensions []string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// Check magic bytes first (more reliable)
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicXZ):
		return formatXZ
	case bytes.HasPrefix(header, magicZstd):
		return formatZstd
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	case bytes.HasPrefix(header, magicBzip2):
		return formatBzip2
	case isTarHeader(header):
		return formatTar
	}

	// Fall back to extension for archive formats
	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	case ".xz", ".txz":
		return formatXZ
	case ".bz2", ".tbz2":
		return formatBzip2
	case ".zst":
		return formatZstd
	case ".tar":
		return formatTar
	}

	if isROMFile(path, extensions) {
		return formatRaw
	}

	return formatUnknown
}

// isROMFile checks if a filename has one of the given ROM extensions (case-insensitive)
func isROMFile(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		ext = emucore.NormalizeExtension(ext)
		if ext == "" {
			continue
		}
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to the loader's size limit, returning an
// error if it is exceeded
func (l *Loader) limitedRead(r io.Reader) ([]byte, error) {
	limit := l.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
