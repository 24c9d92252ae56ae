package romloader

import (
	"bytes"
	"errors"
	"testing"

	emucore "github.com/user-none/goretro/api"
)

func TestLoadGame_InMemoryRaw(t *testing.T) {
	borrowed := []byte{0x01, 0x02, 0x03}
	game := emucore.NewGameImage("/roms/game.sms", borrowed, 1)

	data, name, err := LoadGame(game, testExtensions)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !bytes.Equal(data, borrowed) {
		t.Fatalf("Data mismatch: expected %v, got %v", borrowed, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: expected game.sms, got %s", name)
	}

	borrowed[0] = 0xFF
	if data[0] != 0x01 {
		t.Error("Result aliases the borrowed game data")
	}
}

func TestLoadGame_InMemoryWithoutPath(t *testing.T) {
	game := emucore.NewGameImage("", []byte{0xAB}, 1)

	data, name, err := LoadGame(game, testExtensions)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0xAB}) || name != "" {
		t.Errorf("got %v %q", data, name)
	}
}

func TestLoadGame_InMemoryArchives(t *testing.T) {
	rom := []byte{0x5A, 0xA5, 0x5A}
	tarball := tarBytes(nil, map[string][]byte{"inner/game.sms": rom})

	tests := []struct {
		name     string
		path     string
		data     []byte
		wantName string
	}{
		{"zip", "/roms/pack.zip", zipBytes(t, "game.sms", rom), "game.sms"},
		{"zip without path", "", zipBytes(t, "game.sms", rom), "game.sms"},
		{"gzip", "/roms/game.sms.gz", gzipBytes(t, rom), "game.sms"},
		{"tar.xz", "/roms/pack.tar.xz", xzBytes(t, tarball), "game.sms"},
		{"tar", "", tarball, "game.sms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := emucore.NewGameImage(tt.path, tt.data, 7)
			data, name, err := LoadGame(game, testExtensions)
			if err != nil {
				t.Fatalf("LoadGame failed: %v", err)
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

func TestLoadGame_PathOnly(t *testing.T) {
	rom := []byte{0x01, 0x02}
	path := writeTemp(t, "game.sms.xz", xzBytes(t, rom))

	data, name, err := LoadGame(emucore.NewGameImage(path, nil, 3), testExtensions)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !bytes.Equal(data, rom) || name != "game.sms" {
		t.Errorf("got %v %q", data, name)
	}
}

func TestLoadGame_Empty(t *testing.T) {
	_, _, err := LoadGame(emucore.GameImage{}, testExtensions)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}

func TestLoadGame_InMemoryTooLarge(t *testing.T) {
	game := emucore.NewGameImage("", make([]byte, 16), 1)
	if _, _, err := New(testExtensions, 8).LoadGame(game); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}
