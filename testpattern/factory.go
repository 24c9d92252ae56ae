// Package testpattern is a reference core: it loads any ROM, draws color
// bars with a status banner and plays a tone, exercising every part of the
// core contract.
package testpattern

import emucore "github.com/user-none/goretro/api"

const (
	Name    = "goretro test pattern"
	Version = "1.0.0"
)

// romExtensions are the plain ROM files the core accepts.
var romExtensions = []string{"tpat", "bin", "rom"}

// archiveExtensions are read by the core itself, so frontend extraction
// is blocked.
var archiveExtensions = []string{"zip", "7z", "rar", "gz", "xz", "bz2", "tar", "tgz", "txz"}

// Compile-time interface checks.
var (
	_ emucore.CoreFactory         = (*Factory)(nil)
	_ emucore.Core                = (*Core)(nil)
	_ emucore.SaveMemoryExposer   = (*Core)(nil)
	_ emucore.SystemMemoryExposer = (*Core)(nil)
	_ emucore.VideoMemoryExposer  = (*Core)(nil)
	_ emucore.StateSerializer     = (*Core)(nil)
	_ emucore.OptionSetter        = (*Core)(nil)
	_ emucore.RegionSetter        = (*Core)(nil)
)

// Factory implements emucore.CoreFactory for the test pattern core.
type Factory struct{}

// Descriptor returns the core's identity and loading policy. Games are
// always opened by path so archives reach the core intact.
func (f *Factory) Descriptor() *emucore.CoreDescriptor {
	d := emucore.NewCoreDescriptor(Name, Version)
	for _, ext := range romExtensions {
		d.AcceptExtension(ext)
	}
	for _, ext := range archiveExtensions {
		d.AcceptExtension(ext)
	}
	for _, opt := range options {
		d.AddOption(opt)
	}
	return d.RequireExplicitPath()
}

// NewCore creates an idle core.
func (f *Factory) NewCore() emucore.Core {
	return New()
}
