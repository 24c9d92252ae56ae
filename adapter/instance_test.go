package adapter

import "testing"

func TestInitDeinit(t *testing.T) {
	factory := &fakeFactory{}
	if Initialized() {
		t.Fatal("adapter should start uninitialized")
	}

	a := Init(factory)
	if Current() != a {
		t.Error("Current should return the initialized adapter")
	}
	if a.Core() != factory.core {
		t.Error("adapter should wrap the factory's core")
	}
	if a.GameLoaded() {
		t.Error("new adapter should have no game")
	}

	expectViolation(t, func() { Init(factory) })
	if Current() != a {
		t.Error("double init must not replace the adapter")
	}

	Deinit()
	if Initialized() {
		t.Error("adapter should be gone after Deinit")
	}
	expectViolation(t, Deinit)
	expectViolation(t, func() { Current() })

	// The lifecycle can start again after deinit.
	Init(factory)
	Deinit()
}

func TestDescribeSystem(t *testing.T) {
	describe = new(descriptorMemo)
	t.Cleanup(func() { describe = new(descriptorMemo) })
	factory := &fakeFactory{}

	info := DescribeSystem(factory)
	again := DescribeSystem(factory)

	if factory.descriptors != 1 {
		t.Errorf("descriptor built %d times, want 1", factory.descriptors)
	}
	if info != again {
		t.Error("DescribeSystem should return the memoized value")
	}
	want := SystemInfo{
		LibraryName:     "fake",
		LibraryVersion:  "1.2.3",
		ValidExtensions: "bin|zip",
		NeedFullPath:    false,
		BlockExtract:    true,
	}
	if info != want {
		t.Errorf("DescribeSystem() = %+v, want %+v", info, want)
	}
	if Initialized() {
		t.Error("DescribeSystem must not require or create an instance")
	}
}
