package romloader

import (
	"archive/tar"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// tarBlock returns the first header block of a tar holding one empty file
func tarBlock() []byte {
	return tarBytes(nil, map[string][]byte{"a.sms": nil})[:headerSize]
}

// tarBytes builds a tar archive. Entries are written in the order of names,
// falling back to map order when names is nil.
func tarBytes(names []string, files map[string][]byte) []byte {
	if names == nil {
		for name := range files {
			names = append(names, name)
		}
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, name := range names {
		data := files[name]
		tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		})
		tw.Write(data)
	}
	tw.Close()
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("Failed to create xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write xz: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close xz: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("Failed to create zstd encoder: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func zipBytes(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("Failed to create file in zip: %v", err)
	}
	fw.Write(data)
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_CompressedStreams(t *testing.T) {
	rom := []byte{0x10, 0x20, 0x30, 0x40, 0x50}

	tests := []struct {
		name     string
		file     string
		data     []byte
		wantName string
	}{
		{"gzip", "game.sms.gz", gzipBytes(t, rom), "game.sms"},
		{"xz", "game.sms.xz", xzBytes(t, rom), "game.sms"},
		{"zstd", "game.sms.zst", zstdBytes(t, rom), "game.sms"},
		{"xz without extension", "game.dat", xzBytes(t, rom), "game.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.data)
			data, name, err := Load(path, testExtensions)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(data, rom) {
				t.Errorf("Data mismatch: expected %v, got %v", rom, data)
			}
			if name != tt.wantName {
				t.Errorf("Name mismatch: expected %s, got %s", tt.wantName, name)
			}
		})
	}
}

func TestLoad_Tarballs(t *testing.T) {
	rom := []byte{0xCA, 0xFE}
	tarball := tarBytes([]string{"docs/readme.txt", "roms/game.sms"}, map[string][]byte{
		"docs/readme.txt": []byte("hello"),
		"roms/game.sms":   rom,
	})

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"tar", "game.tar", tarball},
		{"tar.gz", "game.tar.gz", gzipBytes(t, tarball)},
		{"tgz", "game.tgz", gzipBytes(t, tarball)},
		{"tar.xz", "game.tar.xz", xzBytes(t, tarball)},
		{"txz", "game.txz", xzBytes(t, tarball)},
		{"tar.zst", "game.tar.zst", zstdBytes(t, tarball)},
		{"tarball without tar name", "game.gz", gzipBytes(t, tarball)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.data)
			data, name, err := Load(path, testExtensions)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(data, rom) {
				t.Errorf("Data mismatch: expected %v, got %v", rom, data)
			}
			if name != "game.sms" {
				t.Errorf("Name mismatch: expected game.sms, got %s", name)
			}
		})
	}
}

func TestLoad_TarWithoutROM(t *testing.T) {
	tarball := tarBytes(nil, map[string][]byte{"readme.txt": []byte("hi")})
	path := writeTemp(t, "game.tar.xz", xzBytes(t, tarball))

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrNoROMFile) {
		t.Errorf("Expected ErrNoROMFile, got %v", err)
	}
}

func TestLoader_MaxSize(t *testing.T) {
	rom := make([]byte, 64)
	path := writeTemp(t, "game.sms.xz", xzBytes(t, rom))

	if _, _, err := New(testExtensions, 32).Load(path); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("limit 32: expected ErrFileTooLarge, got %v", err)
	}
	if _, _, err := New(testExtensions, 64).Load(path); err != nil {
		t.Errorf("limit 64: unexpected error %v", err)
	}
}

func TestLoader_ExtensionsWithoutDot(t *testing.T) {
	rom := []byte{1, 2, 3}
	path := writeTemp(t, "pack.zip", zipBytes(t, "game.BIN", rom))

	data, name, err := New([]string{"bin", "md"}, 0).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, rom) || name != "game.BIN" {
		t.Errorf("got %v %q", data, name)
	}
}

func TestDecompress_Unsupported(t *testing.T) {
	if _, _, err := decompress(formatZIP, bytes.NewReader(nil)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
