package emucore

import "strings"

// archiveExtensions lists extensions that make a frontend's own archive
// extraction unsafe for a core that wants to see the archive itself.
var archiveExtensions = map[string]bool{
	"gz":      true,
	"xz":      true,
	"zip":     true,
	"rar":     true,
	"7z":      true,
	"tar":     true,
	"tgz":     true,
	"txz":     true,
	"bz2":     true,
	"tar.gz":  true,
	"tar.bz2": true,
	"tar.xz":  true,
}

// IsArchiveExtension reports whether ext (already normalized) names an
// archive format.
func IsArchiveExtension(ext string) bool {
	return archiveExtensions[ext]
}

// NormalizeExtension lower-cases ext and strips a single leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

// CoreDescriptor is the static identity of a core: name, version, the ROM
// extensions it accepts and its file loading policy. Build it once with the
// fluent methods and do not modify it after handing it to the adapter.
type CoreDescriptor struct {
	name         string
	version      string
	extensions   []string
	needFullPath bool
	allowExtract bool
	options      []CoreOption
}

// NewCoreDescriptor creates a descriptor with no extensions. Frontend
// archive extraction is allowed until an archive extension is accepted.
func NewCoreDescriptor(name, version string) *CoreDescriptor {
	return &CoreDescriptor{
		name:         name,
		version:      version,
		allowExtract: true,
	}
}

// AcceptExtension appends ext to the list of supported ROM extensions.
// Extensions are stored normalized, in insertion order, and are not
// de-duplicated. Accepting any archive extension permanently disables
// frontend archive extraction.
func (d *CoreDescriptor) AcceptExtension(ext string) *CoreDescriptor {
	ext = NormalizeExtension(ext)
	d.extensions = append(d.extensions, ext)
	if IsArchiveExtension(ext) {
		d.allowExtract = false
	}
	return d
}

// RequireExplicitPath makes the frontend pass a real filesystem path
// instead of loading the game into memory.
func (d *CoreDescriptor) RequireExplicitPath() *CoreDescriptor {
	d.needFullPath = true
	return d
}

// AddOption declares a frontend-configurable setting. Options are
// presented in declaration order.
func (d *CoreDescriptor) AddOption(opt CoreOption) *CoreDescriptor {
	d.options = append(d.options, opt)
	return d
}

// Options returns a copy of the declared options.
func (d *CoreDescriptor) Options() []CoreOption {
	out := make([]CoreOption, len(d.options))
	copy(out, d.options)
	return out
}

// Name returns the library name.
func (d *CoreDescriptor) Name() string { return d.name }

// Version returns the library version.
func (d *CoreDescriptor) Version() string { return d.version }

// Extensions returns a copy of the accepted extensions.
func (d *CoreDescriptor) Extensions() []string {
	out := make([]string, len(d.extensions))
	copy(out, d.extensions)
	return out
}

// ValidExtensions returns the accepted extensions joined with '|', the
// form the frontend expects.
func (d *CoreDescriptor) ValidExtensions() string {
	return strings.Join(d.extensions, "|")
}

// NeedFullPath reports whether the core requires a filesystem path.
func (d *CoreDescriptor) NeedFullPath() bool { return d.needFullPath }

// AllowArchiveExtraction reports whether the frontend may extract archives
// before handing the game to the core.
func (d *CoreDescriptor) AllowArchiveExtraction() bool { return d.allowExtract }

// BlockExtract is the inverse of AllowArchiveExtraction.
func (d *CoreDescriptor) BlockExtract() bool { return !d.allowExtract }

// CoreFactory provides the static descriptor of a core and creates its
// single per-process instance.
type CoreFactory interface {
	// Descriptor returns the core identity. It is queried once, possibly
	// before any core instance exists.
	Descriptor() *CoreDescriptor

	// NewCore returns a core in its default state.
	NewCore() Core
}
