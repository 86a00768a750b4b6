package ref

import (
	"sync"
	"sync/atomic"
)

// controlBlock is the out-of-band indirection shared by every WeakRef
// observing one object. It carries two independent lifecycle signals: target
// (set at creation, cleared exactly once when the object dies) and weak (the
// observer count). The block itself becomes unreachable, and is reclaimed by
// the runtime, once the registry entry is retired and the last observer
// drops its pointer.
//
// target holds the object by its dynamic identity, so concrete and
// interface-typed handles to one object always share a single block. It is
// guarded by its own mutex rather than the registry mutex, so Lock and
// Expired never contend with registry map mutations.
type controlBlock struct {
	mu     sync.Mutex
	target any
	weak   atomic.Int32
}

// load returns the tracked object and whether it is still alive.
func (b *controlBlock) load() (any, bool) {
	b.mu.Lock()
	t := b.target
	b.mu.Unlock()
	return t, t != nil
}

// clear drops the target. Called exactly once, from the strong-owner side,
// at the zero-count transition and before the object is disposed.
func (b *controlBlock) clear() {
	b.mu.Lock()
	b.target = nil
	b.mu.Unlock()
}
