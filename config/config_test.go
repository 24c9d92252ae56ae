package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(t.TempDir(), "goretro")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("got %+v, want defaults", c)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	body := "[log]\nlevel = \"debug\"\n\n[content]\ndatabase = \"db/Test.rdb\"\n"
	if err := os.WriteFile(Path(dir, "goretro"), []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(dir, "goretro")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != slog.LevelDebug {
		t.Errorf("Level = %v, want DEBUG", c.Log.Level)
	}
	if !c.Log.Host {
		t.Error("Host should keep its default")
	}
	if c.Content.MaxROMSize != Default().Content.MaxROMSize {
		t.Errorf("MaxROMSize = %d, want default", c.Content.MaxROMSize)
	}
	if want := filepath.Join(dir, "db", "Test.rdb"); c.Content.Database != want {
		t.Errorf("Database = %q, want %q", c.Content.Database, want)
	}
}

func TestLoad_AbsoluteDatabase(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "x.rdb")
	body := "[content]\ndatabase = '" + abs + "'\n"
	if err := os.WriteFile(Path(dir, "core"), []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(dir, "core")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Content.Database != abs {
		t.Errorf("Database = %q, want %q", c.Content.Database, abs)
	}
}

func TestLoad_Corrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir, "goretro"), []byte("[log\nlevel="), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(dir, "goretro")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if c != Default() {
		t.Errorf("corrupted config should fall back to defaults, got %+v", c)
	}
}

func TestDecode_BadLevel(t *testing.T) {
	if _, err := Decode(strings.NewReader("[log]\nlevel = \"loud\"\n")); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSaveDecode(t *testing.T) {
	want := Config{
		Log:     Log{Level: slog.LevelWarn, Host: false},
		Content: Content{MaxROMSize: 1024, Database: "/db/x.rdb"},
	}

	var buf bytes.Buffer
	if err := Save(want, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(buf.String(), "max_rom_size = 1024") {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
