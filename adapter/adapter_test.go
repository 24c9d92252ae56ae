package adapter

import (
	"errors"
	"testing"

	emucore "github.com/user-none/goretro/api"
)

func TestLoadGame_Success(t *testing.T) {
	core := &fakeCore{}
	a, env, _ := newTestAdapter(t, core)

	data := []byte{1, 2, 3, 4}
	if !a.LoadGame(&GameInfo{Path: "/roms/a.bin", Data: data}) {
		t.Fatal("LoadGame returned false")
	}
	if !a.GameLoaded() {
		t.Error("game should be loaded")
	}
	if len(env.formats) != 1 || env.formats[0] != emucore.PixelFormatRGB565 {
		t.Errorf("pixel format negotiation = %v, want [RGB565]", env.formats)
	}
	path, ok := core.game.Path()
	if !ok || path != "/roms/a.bin" {
		t.Errorf("core saw path %q, %v", path, ok)
	}
	if &core.game.Data()[0] != &data[0] {
		t.Error("core should borrow the frontend buffer, not a copy")
	}
	if core.game.Token() == 0 {
		t.Error("game should carry a non-zero token")
	}
}

func TestLoadGame_NilInfoIsEmptyImage(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)

	if !a.LoadGame(nil) {
		t.Fatal("LoadGame(nil) returned false")
	}
	if !core.game.IsEmpty() {
		t.Error("nil game info should produce an empty image")
	}
}

func TestLoadGame_WhileLoadedIsViolation(t *testing.T) {
	core := &fakeCore{}
	a, env, _ := newTestAdapter(t, core)
	a.LoadGame(&GameInfo{Path: "first"})
	config := a.Config()
	token := a.gameToken

	expectViolation(t, func() { a.LoadGame(&GameInfo{Path: "second"}) })

	if core.loads != 1 {
		t.Errorf("core saw %d loads, want 1", core.loads)
	}
	if a.Config() != config || a.gameToken != token || !a.GameLoaded() {
		t.Error("rejected load must not change adapter state")
	}
	if len(env.formats) != 1 {
		t.Errorf("pixel format negotiated %d times, want 1", len(env.formats))
	}
}

func TestLoadGame_CoreFailure(t *testing.T) {
	core := &fakeCore{onLoad: func(game emucore.GameImage) emucore.LoadResult {
		return emucore.LoadFailed(game, errors.New("bad header"))
	}}
	a, env, _ := newTestAdapter(t, core)
	before := a.Config()

	if a.LoadGame(&GameInfo{Data: []byte{0}}) {
		t.Fatal("LoadGame should report failure")
	}
	if a.GameLoaded() {
		t.Error("failed load must not mark the game loaded")
	}
	if a.Config() != before {
		t.Error("failed load must not replace the configuration")
	}
	if len(env.formats) != 0 {
		t.Error("failed load must not negotiate a pixel format")
	}

	// A later load succeeds normally.
	core.onLoad = nil
	if !a.LoadGame(&GameInfo{Data: []byte{0}}) {
		t.Error("load after a failure should succeed")
	}
}

func TestLoadGame_SuccessWithoutConfig(t *testing.T) {
	tests := []struct {
		name   string
		result func(game emucore.GameImage) emucore.LoadResult
	}{
		{"nil config", func(emucore.GameImage) emucore.LoadResult { return emucore.LoadSucceeded(nil) }},
		{"wrong image", func(emucore.GameImage) emucore.LoadResult {
			return emucore.LoadFailed(emucore.GameImage{}, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestAdapter(t, &fakeCore{onLoad: tt.result})
			expectViolation(t, func() { a.LoadGame(&GameInfo{Path: "x"}) })
			if a.GameLoaded() {
				t.Error("game must not be loaded")
			}
		})
	}
}

func TestLoadGame_PixelFormatRejected(t *testing.T) {
	a, env, _ := newTestAdapter(t, &fakeCore{})
	env.reject = true

	expectViolation(t, func() { a.LoadGame(&GameInfo{Path: "x"}) })
	if a.GameLoaded() {
		t.Error("game must not be loaded when the pixel format is rejected")
	}
}

func TestLoadGame_NoEnvironment(t *testing.T) {
	a, _, _ := newTestAdapter(t, &fakeCore{})
	SetEnvironment(nil)

	expectViolation(t, func() { a.LoadGame(&GameInfo{Path: "x"}) })
}

func TestLoadGameSpecial(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)
	if a.LoadGameSpecial(1, []GameInfo{{Path: "a"}, {Path: "b"}}) {
		t.Error("LoadGameSpecial should always fail")
	}
	if core.loads != 0 || a.GameLoaded() {
		t.Error("LoadGameSpecial must not reach the core")
	}
}

func TestUnloadGame_NotLoaded(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)

	game := a.UnloadGame()
	if !game.IsEmpty() {
		t.Error("unload without a game should return an empty image")
	}
	if core.unloads != 0 {
		t.Error("unload without a game must not call the core")
	}
}

func TestUnloadGame_EchoesImage(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)
	a.LoadGame(&GameInfo{Path: "/roms/game.bin"})

	game := a.UnloadGame()
	if core.unloads != 1 {
		t.Errorf("core unloads = %d, want 1", core.unloads)
	}
	if path, _ := game.Path(); path != "/roms/game.bin" {
		t.Errorf("returned path = %q", path)
	}
	if a.GameLoaded() {
		t.Error("game should no longer be loaded")
	}

	// Second unload is a no-op.
	a.UnloadGame()
	if core.unloads != 1 {
		t.Error("second unload must not call the core")
	}
}

func TestUnloadGame_ForeignImageIsViolation(t *testing.T) {
	core := &fakeCore{onUnload: func(emucore.GameImage) emucore.GameImage {
		return emucore.NewGameImage("forged", nil, 999)
	}}
	a, _, _ := newTestAdapter(t, core)
	a.LoadGame(&GameInfo{Path: "real"})

	expectViolation(t, func() { a.UnloadGame() })
}

func TestLoadUnloadCycleTokens(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)

	a.LoadGame(&GameInfo{Path: "one"})
	first := core.game.Token()
	a.UnloadGame()
	a.LoadGame(&GameInfo{Path: "two"})
	if core.game.Token() == first {
		t.Error("each load should get a fresh token")
	}
	if got := a.UnloadGame(); got.Token() != core.game.Token() {
		t.Error("unload should return the current image")
	}
}

func TestRun_MissingCallbacks(t *testing.T) {
	tests := []struct {
		name  string
		clear func(a *Adapter)
	}{
		{"input poll", func(a *Adapter) { a.SetInputPoll(nil) }},
		{"input state", func(a *Adapter) { a.SetInputState(nil) }},
		{"video refresh", func(a *Adapter) { a.SetVideoRefresh(nil) }},
		{"audio batch", func(a *Adapter) { a.SetAudioSampleBatch(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := audioCore(1600)
			a, _, _ := newTestAdapter(t, core)
			a.LoadGame(nil)
			tt.clear(a)

			expectViolation(t, a.Run)
			if core.runs != 0 {
				t.Error("core must not run without callbacks")
			}
		})
	}
}

func TestRun_SingleSampleCallbackNotRequired(t *testing.T) {
	a, _, _ := newTestAdapter(t, audioCore(1600))
	a.SetAudioSample(nil)
	a.LoadGame(nil)
	a.Run()
}

func TestRun_NoGameIsViolation(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)
	expectViolation(t, a.Run)
	if core.runs != 0 {
		t.Error("core must not run without a game")
	}
}

func TestRun_PollsInputFirst(t *testing.T) {
	var pollsSeen int
	var host *fakeHost
	core := &fakeCore{onRun: func(f emucore.Frame) {
		pollsSeen = host.polls
		f.UploadAudioFrame(make([]int16, 1600))
	}}
	a, _, h := newTestAdapter(t, core)
	host = h
	a.LoadGame(nil)

	a.Run()
	if pollsSeen != 1 {
		t.Errorf("input polled %d times before RunFrame, want 1", pollsSeen)
	}
}

func TestRun_FrameDoesNotEscape(t *testing.T) {
	var kept emucore.Frame
	core := &fakeCore{onRun: func(f emucore.Frame) {
		kept = f
		f.UploadAudioFrame(make([]int16, 1600))
	}}
	a, _, _ := newTestAdapter(t, core)
	a.LoadGame(nil)
	a.Run()

	expectViolation(t, func() { kept.UploadAudioFrame(make([]int16, 2)) })
}

func TestReset(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)
	a.Reset()
	a.LoadGame(nil)
	a.Reset()
	if core.resets != 2 {
		t.Errorf("resets = %d, want 2", core.resets)
	}
}

func TestSystemAVInfo(t *testing.T) {
	core := &fakeCore{}
	a, _, _ := newTestAdapter(t, core)

	info := a.SystemAVInfo()
	if info.Geometry != (GameGeometry{}) || info.Timing != (SystemTiming{}) {
		t.Errorf("placeholder AV info = %+v, want zero", info)
	}

	core.onLoad = func(emucore.GameImage) emucore.LoadResult {
		return emucore.LoadSucceeded(emucore.NewVideoAudioConfig().
			Video(256, 224, 59.94, emucore.PixelFormatARGB8888).
			MaxVideoSize(320, 240).
			Audio(44100))
	}
	a.LoadGame(nil)
	info = a.SystemAVInfo()
	want := SystemAVInfo{
		Geometry: GameGeometry{BaseWidth: 256, BaseHeight: 224, MaxWidth: 320, MaxHeight: 240},
		Timing:   SystemTiming{FPS: 59.94, SampleRate: 44100},
	}
	if info != want {
		t.Errorf("SystemAVInfo() = %+v, want %+v", info, want)
	}
	if info.Geometry.AspectRatio != 0 {
		t.Error("aspect ratio should default to 0")
	}
}

func TestSystemAVInfo_AspectOverride(t *testing.T) {
	core := &fakeCore{onLoad: func(emucore.GameImage) emucore.LoadResult {
		return emucore.LoadSucceeded(testConfig().AspectRatio(4.0 / 3.0))
	}}
	a, _, _ := newTestAdapter(t, core)
	a.LoadGame(nil)
	if got := a.SystemAVInfo().Geometry.AspectRatio; got != float32(4.0/3.0) {
		t.Errorf("aspect ratio = %v", got)
	}
}

func TestRegion(t *testing.T) {
	tests := []struct {
		name   string
		config *emucore.VideoAudioConfig
		want   emucore.Region
	}{
		{"60 Hz", testConfig(), emucore.RegionNTSC},
		{"50 Hz", emucore.NewVideoAudioConfig().Video(4, 2, 50, emucore.PixelFormatRGB565), emucore.RegionPAL},
		{"60 Hz forced PAL", testConfig().Region(emucore.RegionPAL), emucore.RegionPAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := &fakeCore{onLoad: func(emucore.GameImage) emucore.LoadResult {
				return emucore.LoadSucceeded(tt.config)
			}}
			a, _, _ := newTestAdapter(t, core)
			a.LoadGame(nil)
			if got := a.Region(); got != tt.want {
				t.Errorf("Region() = %v, want %v", got, tt.want)
			}
		})
	}
}

type stateCore struct {
	fakeCore
	state []byte
}

func (c *stateCore) SerializeSize() int { return len(c.state) }

func (c *stateCore) Serialize(dst []byte) bool {
	copy(dst, c.state)
	return true
}

func (c *stateCore) Unserialize(src []byte) bool {
	if len(src) != len(c.state) {
		return false
	}
	copy(c.state, src)
	return true
}

func TestSerialize_Stubs(t *testing.T) {
	a, _, _ := newTestAdapter(t, &fakeCore{})
	if a.SerializeSize() != 0 {
		t.Error("SerializeSize should be 0 without save state support")
	}
	if a.Serialize(make([]byte, 16)) || a.Unserialize(make([]byte, 16)) {
		t.Error("serialization should fail without save state support")
	}
	a.CheatReset()
	a.CheatSet(0, true, "ABCD-1234")
	a.SetControllerPortDevice(0, DeviceJoypad)
}

func TestSerialize_StateCore(t *testing.T) {
	core := &stateCore{state: []byte{1, 2, 3}}
	a := New(core)

	if a.SerializeSize() != 3 {
		t.Fatalf("SerializeSize() = %d, want 3", a.SerializeSize())
	}
	if a.Serialize(make([]byte, 2)) {
		t.Error("Serialize into a short buffer should fail")
	}
	buf := make([]byte, 3)
	if !a.Serialize(buf) || buf[2] != 3 {
		t.Errorf("Serialize = %v", buf)
	}
	if !a.Unserialize([]byte{7, 8, 9}) || core.state[0] != 7 {
		t.Error("Unserialize should restore state")
	}
}
