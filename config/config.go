// Package config holds adapter settings read from a TOML file in the
// frontend's system directory.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Name is the base name of the settings file shared by the adapter and
// its cores.
const Name = "goretro"

// Log controls adapter logging.
type Log struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	Level slog.Level `toml:"level"`
	// Host forwards records to the frontend's log interface when it has one.
	Host bool `toml:"host"`
}

// Content controls how cores load games.
type Content struct {
	// MaxROMSize caps the size of an extracted ROM in bytes.
	MaxROMSize int64 `toml:"max_rom_size"`
	// Database is an RDB file used for region hints. Relative paths are
	// resolved against the directory the config was loaded from.
	Database string `toml:"database"`
}

type Config struct {
	Log     Log     `toml:"log"`
	Content Content `toml:"content"`
}

func Default() Config {
	return Config{
		Log: Log{
			Level: slog.LevelInfo,
			Host:  true,
		},
		Content: Content{
			MaxROMSize: 8 * 1024 * 1024,
		},
	}
}

// Path returns the config file location for name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".toml")
}

func Save(config Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(config)
}

// Decode reads a config, keeping defaults for keys the input omits.
func Decode(r io.Reader) (Config, error) {
	c := Default()

	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return c, err
	}

	return c, nil
}

// Load reads <dir>/<name>.toml. A missing file yields the defaults; a
// corrupted one returns an error alongside the defaults.
func Load(dir, name string) (Config, error) {
	f, err := os.Open(Path(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", f.Name(), err)
	}
	if c.Content.Database != "" && !filepath.IsAbs(c.Content.Database) {
		c.Content.Database = filepath.Join(dir, c.Content.Database)
	}
	return c, nil
}
