package adapter

import (
	"sync"

	emucore "github.com/user-none/goretro/api"
)

// The frontend drives exactly one adapter per process between init and
// deinit. The mutex guards against misuse; the protocol itself is
// single-threaded.
var instance struct {
	mu      sync.Mutex
	adapter *Adapter
}

// Init creates the process-wide adapter around factory's core. Calling it
// twice without Deinit is a contract violation.
func Init(factory emucore.CoreFactory) *Adapter {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.adapter != nil {
		violate("init called twice without deinit")
	}
	instance.adapter = New(factory.NewCore())
	instance.adapter.UseOptions(describeFactory(factory))
	Logger().Debug("adapter initialized")
	return instance.adapter
}

// Deinit destroys the process-wide adapter. Calling it without Init is a
// contract violation.
func Deinit() {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.adapter == nil {
		violate("deinit called without init")
	}
	if instance.adapter.loaded {
		Logger().Warn("deinit with a game still loaded")
	}
	instance.adapter = nil
	Logger().Debug("adapter deinitialized")
}

// Current returns the process-wide adapter. Using it before Init is a
// contract violation.
func Current() *Adapter {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.adapter == nil {
		violate("adapter used before init")
	}
	return instance.adapter
}

// Initialized reports whether Init has been called without a matching
// Deinit.
func Initialized() bool {
	instance.mu.Lock()
	defer instance.mu.Unlock()
	return instance.adapter != nil
}

// descriptorMemo holds the factory descriptor built on first use.
type descriptorMemo struct {
	once sync.Once
	desc *emucore.CoreDescriptor
	info SystemInfo
}

var describe = new(descriptorMemo)

func (m *descriptorMemo) load(factory emucore.CoreFactory) {
	m.once.Do(func() {
		m.desc = factory.Descriptor()
		m.info = systemInfoFrom(m.desc)
	})
}

// describeFactory returns the memoized descriptor.
func describeFactory(factory emucore.CoreFactory) *emucore.CoreDescriptor {
	describe.load(factory)
	return describe.desc
}

// DescribeSystem returns the library description. The factory's
// descriptor is built on the first call and reused for the life of the
// process, so it may be called before Init.
func DescribeSystem(factory emucore.CoreFactory) SystemInfo {
	describe.load(factory)
	return describe.info
}
