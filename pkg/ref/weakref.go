package ref

import (
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/errors"
)

// WeakRef is a non-owning observer of a managed object. It never keeps the
// object alive; it can test liveness and attempt to obtain a strong handle.
// The zero value is empty and permanently expired. Like Ref, each conceptual
// observer accounts for itself with Clone/Release.
//
// Observers created from concrete and cast (interface-typed) handles to one
// object share a single control block, so they expire together.
type WeakRef[T Managed] struct {
	block *controlBlock
}

// WeakOf returns a weak observer of a live managed object. The caller must
// hold a strong reference to obj for the duration of the call.
func WeakOf[T Managed](obj T) WeakRef[T] {
	var zero T
	if obj == zero {
		return WeakRef[T]{}
	}
	b := registryFor(obj).getOrCreate(obj)
	b.weak.Add(1)
	return WeakRef[T]{block: b}
}

// IsNil reports whether the observer is empty (never attached to an object).
func (w WeakRef[T]) IsNil() bool {
	return w.block == nil
}

// Expired reports whether the observed object has been destroyed. Empty
// observers are always expired.
func (w WeakRef[T]) Expired() bool {
	if w.block == nil {
		return true
	}
	_, alive := w.block.load()
	return !alive
}

// Clone adds an observer and returns the new handle.
func (w WeakRef[T]) Clone() WeakRef[T] {
	if w.block != nil {
		w.block.weak.Add(1)
	}
	return WeakRef[T]{block: w.block}
}

// Release drops this observer and empties the handle. Once the last observer
// of a dead object releases, its control block becomes unreachable and the
// runtime reclaims it. Releasing an empty handle is a no-op.
func (w *WeakRef[T]) Release() {
	b := w.block
	if b == nil {
		return
	}
	w.block = nil
	if n := b.weak.Add(-1); n < 0 {
		var zero T
		errors.Report(&errors.EditorError{
			Op:   "ref.WeakRef.Release",
			Kind: errors.KindLifetime,
			Err:  &errors.LifetimeError{Op: "ref.WeakRef.Release", Type: fmt.Sprintf("%T", zero), Count: n},
		})
	}
}

// Assign makes w observe whatever other observes, releasing w's previous
// block. Assigning an observer to itself (same block) is a no-op.
func (w *WeakRef[T]) Assign(other WeakRef[T]) {
	if w.block == other.block {
		return
	}
	old := *w
	*w = other.Clone()
	old.Release()
}

// Move transfers the observation out of w into the returned handle with no
// count change; w is left empty.
func (w *WeakRef[T]) Move() WeakRef[T] {
	out := WeakRef[T]{block: w.block}
	w.block = nil
	return out
}

// Lock attempts to mint a strong handle. It returns a valid owner only if
// the object was alive at the moment of the attempt, otherwise an empty
// handle; locking an expired or empty observer is always a safe no-op. The
// liveness test and the count increment are one atomic step (TryIncRef), so
// a concurrent drop of the last strong owner can never be interleaved into a
// use-after-dispose.
func (w WeakRef[T]) Lock() Ref[T] {
	if w.block == nil {
		return Ref[T]{}
	}
	target, alive := w.block.load()
	if !alive {
		return Ref[T]{}
	}
	obj := target.(T)
	if !obj.TryIncRef() {
		return Ref[T]{}
	}
	return Ref[T]{obj: obj}
}

// UseCount returns the observed object's strong count, or 0 if expired.
func (w WeakRef[T]) UseCount() int32 {
	if w.block == nil {
		return 0
	}
	target, alive := w.block.load()
	if !alive {
		return 0
	}
	return target.(Counter).RefCount()
}

// Equal reports whether two observers watch the same control block, or are
// both empty/expired.
func (w WeakRef[T]) Equal(other WeakRef[T]) bool {
	if w.block == other.block {
		return true
	}
	return w.Expired() && other.Expired()
}
