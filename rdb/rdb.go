// Package rdb is a parser for RDB files, a binary database of games with
// metadata used by RetroArch/libretro.
//
// An RDB file is a 16 byte header followed by a stream of MessagePack maps,
// one per game, terminated by nil.
package rdb

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	emucore "github.com/user-none/goretro/api"
)

// headerSize is the length of the "RARCHDB" header preceding the entries.
const headerSize = 0x10

// Game represents a game entry in the RDB
type Game struct {
	Name         string // Full No-Intro name (e.g., "Sonic the Hedgehog (USA, Europe)")
	Description  string
	Genre        string
	Developer    string
	Publisher    string
	Franchise    string
	ESRBRating   string
	ROMName      string // ROM filename
	ReleaseMonth uint
	ReleaseYear  uint
	Size         uint64
	CRC32        uint32
	Serial       string
	MD5          string // lower-case hex
}

// entry is the on-disk shape of one game map. Hashes are raw bytes.
type entry struct {
	Name         string `msgpack:"name"`
	Description  string `msgpack:"description"`
	Genre        string `msgpack:"genre"`
	Developer    string `msgpack:"developer"`
	Publisher    string `msgpack:"publisher"`
	Franchise    string `msgpack:"franchise"`
	ESRBRating   string `msgpack:"esrb_rating"`
	ROMName      string `msgpack:"rom_name"`
	ReleaseMonth uint   `msgpack:"releasemonth"`
	ReleaseYear  uint   `msgpack:"releaseyear"`
	Size         uint64 `msgpack:"size"`
	CRC          []byte `msgpack:"crc"`
	Serial       string `msgpack:"serial"`
	MD5          []byte `msgpack:"md5"`
}

func (e *entry) game() Game {
	g := Game{
		Name:         e.Name,
		Description:  e.Description,
		Genre:        e.Genre,
		Developer:    e.Developer,
		Publisher:    e.Publisher,
		Franchise:    e.Franchise,
		ESRBRating:   e.ESRBRating,
		ROMName:      e.ROMName,
		ReleaseMonth: e.ReleaseMonth,
		ReleaseYear:  e.ReleaseYear,
		Size:         e.Size,
		Serial:       e.Serial,
	}
	if len(e.CRC) == 4 {
		g.CRC32 = binary.BigEndian.Uint32(e.CRC)
	}
	if len(e.MD5) > 0 {
		g.MD5 = hex.EncodeToString(e.MD5)
	}
	return g
}

// RDB contains all game entries from a parsed RDB file
type RDB struct {
	games   []Game
	byCRC32 map[uint32]*Game // Index for fast CRC32 lookups
	byMD5   map[string]*Game // Index for fast MD5 lookups
}

// LoadRDB loads and parses an RDB file from disk
func LoadRDB(path string) (*RDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read RDB file: %w", err)
	}
	return Parse(data), nil
}

// Parse parses RDB file content and returns an RDB database. Parsing stops
// at the nil terminator or at the first malformed entry; entries before it
// are kept.
func Parse(data []byte) *RDB {
	games := parseGames(data)

	rdb := &RDB{
		games:   games,
		byCRC32: make(map[uint32]*Game, len(games)),
		byMD5:   make(map[string]*Game, len(games)),
	}

	// Build CRC32 and MD5 indexes
	for i := range rdb.games {
		if rdb.games[i].CRC32 != 0 {
			rdb.byCRC32[rdb.games[i].CRC32] = &rdb.games[i]
		}
		if rdb.games[i].MD5 != "" {
			rdb.byMD5[rdb.games[i].MD5] = &rdb.games[i]
		}
	}

	return rdb
}

// parseGames decodes the MessagePack entries following the header
func parseGames(data []byte) []Game {
	if len(data) <= headerSize {
		return nil
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data[headerSize:]))

	var output []Game
	for {
		code, err := dec.PeekCode()
		if err != nil || code == msgpcode.Nil {
			break
		}
		if !msgpcode.IsFixedMap(code) && code != msgpcode.Map16 && code != msgpcode.Map32 {
			break
		}

		var e entry
		if err := dec.Decode(&e); err != nil {
			break
		}
		g := e.game()
		if g.Name != "" || g.CRC32 != 0 {
			output = append(output, g)
		}
	}
	return output
}

// FindByCRC32 looks up a game by its CRC32 checksum
func (rdb *RDB) FindByCRC32(crc32 uint32) *Game {
	return rdb.byCRC32[crc32]
}

// FindByMD5 looks up a game by its MD5 hash
func (rdb *RDB) FindByMD5(md5 string) *Game {
	return rdb.byMD5[strings.ToLower(md5)]
}

// FindROM looks up a game by the CRC32 of its ROM data
func (rdb *RDB) FindROM(data []byte) *Game {
	return rdb.byCRC32[crc32.ChecksumIEEE(data)]
}

// GetMD5ByCRC32 returns the MD5 hash for a game found by CRC32
func (rdb *RDB) GetMD5ByCRC32(crc32 uint32) string {
	if g := rdb.byCRC32[crc32]; g != nil {
		return g.MD5
	}
	return ""
}

// GameCount returns the number of games in the database
func (rdb *RDB) GameCount() int {
	return len(rdb.games)
}

// Region returns the video region implied by the game's No-Intro name.
func (g *Game) Region() (emucore.Region, bool) {
	return RegionHint(g.Name)
}

// GetDisplayName extracts a clean display name from a No-Intro name
// by removing region/version information in parentheses
func GetDisplayName(name string) string {
	// Find the first parenthesis
	idx := strings.Index(name, " (")
	if idx > 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}

// GetRegionFromName extracts region information from a No-Intro name
// Returns "us", "eu", "jp", or "" if unknown
func GetRegionFromName(name string) string {
	nameLower := strings.ToLower(name)

	// Check for region indicators in parentheses
	if strings.Contains(nameLower, "(usa") ||
		strings.Contains(nameLower, "(us)") ||
		strings.Contains(nameLower, ", usa)") {
		return "us"
	}
	if strings.Contains(nameLower, "(europe") ||
		strings.Contains(nameLower, "(eu)") ||
		strings.Contains(nameLower, ", europe)") {
		return "eu"
	}
	if strings.Contains(nameLower, "(japan") ||
		strings.Contains(nameLower, "(jp)") ||
		strings.Contains(nameLower, ", japan)") {
		return "jp"
	}

	// Multi-region releases default to US
	if strings.Contains(nameLower, "(world)") {
		return "us"
	}

	return ""
}

// RegionHint maps a No-Intro name to a video region. European releases
// are PAL; US, Japanese and world releases are NTSC.
func RegionHint(name string) (emucore.Region, bool) {
	switch GetRegionFromName(name) {
	case "eu":
		return emucore.RegionPAL, true
	case "us", "jp":
		return emucore.RegionNTSC, true
	}
	return emucore.RegionNTSC, false
}
