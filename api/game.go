package emucore

// GameImage is a borrowed view of the game handed to a core: an optional
// filesystem path and an optional byte slice. The byte slice aliases
// frontend memory and is valid only for the duration of the LoadGame call
// that received it; copy anything that must outlive the call.
//
// A core keeps the GameImage value itself and returns it from UnloadGame.
// The token identifies which load produced the view.
type GameImage struct {
	path  string
	data  []byte
	token uint64
}

// NewGameImage creates a view. An empty path or nil data means absent.
func NewGameImage(path string, data []byte, token uint64) GameImage {
	return GameImage{path: path, data: data, token: token}
}

// Path returns the game path and whether one was supplied.
func (g GameImage) Path() (string, bool) {
	return g.path, g.path != ""
}

// Data returns the borrowed game bytes, or nil.
func (g GameImage) Data() []byte {
	return g.data
}

// HasData reports whether game bytes were supplied.
func (g GameImage) HasData() bool {
	return g.data != nil
}

// IsEmpty reports whether neither path nor data is present, as for a
// BIOS-only boot.
func (g GameImage) IsEmpty() bool {
	return g.path == "" && g.data == nil
}

// Token returns the provenance token assigned by the adapter.
func (g GameImage) Token() uint64 {
	return g.token
}
