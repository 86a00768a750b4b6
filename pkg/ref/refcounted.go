package ref

import "sync/atomic"

// Counter is the counting capability a managed type exposes. Embedding
// RefCounted provides it.
type Counter interface {
	// IncRef atomically increments the strong count.
	IncRef()
	// DecRef atomically decrements the strong count and returns the new
	// value. Callers use the returned value to detect the zero transition.
	DecRef() int32
	// TryIncRef atomically increments the strong count only if it is
	// currently nonzero. It returns false once all strong owners are gone,
	// in which case no reference was taken.
	TryIncRef() bool
	// RefCount atomically reads the strong count.
	RefCount() int32
}

// Managed constrains the pointer (or interface) types the handles can carry:
// anything comparable that exposes the counting capability.
type Managed interface {
	comparable
	Counter
}

// Disposable is implemented by managed types that hold resources needing
// deterministic release. Dispose is called exactly once, after the last
// strong owner is dropped and the object's registry entry is retired.
type Disposable interface {
	Dispose()
}

// RefCounted carries an atomic strong count. Embed it to make a type
// manageable by Ref and WeakRef. The zero value is ready to use and has a
// count of zero; the New factory establishes the first owner.
type RefCounted struct {
	refs atomic.Int32
}

// IncRef atomically increments the strong count.
func (rc *RefCounted) IncRef() {
	rc.refs.Add(1)
}

// DecRef atomically decrements the strong count and returns the new value.
func (rc *RefCounted) DecRef() int32 {
	return rc.refs.Add(-1)
}

// TryIncRef increments the strong count only if it is currently positive.
// The load and the increment are a single atomic step (a CAS loop), so a
// concurrent release of the last owner either happens entirely before this
// call (TryIncRef returns false) or entirely after it (the caller holds a
// valid reference and the release no longer reaches zero).
func (rc *RefCounted) TryIncRef() bool {
	for {
		n := rc.refs.Load()
		if n <= 0 {
			return false
		}
		if rc.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// RefCount atomically reads the strong count.
func (rc *RefCounted) RefCount() int32 {
	return rc.refs.Load()
}
