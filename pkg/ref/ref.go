package ref

import (
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/errors"
)

// Ref is an owning handle to a managed object. The zero value is an empty
// handle. Ref values may be copied freely as long as each conceptual owner
// accounts for itself with Clone/Release; plain struct assignment does not
// change the count.
type Ref[T Managed] struct {
	obj T
}

// New establishes the first strong owner of a freshly constructed object and
// returns the owning handle. The object's count must be zero (the zero value
// of an embedded RefCounted). New(nil) returns an empty handle.
func New[T Managed](obj T) Ref[T] {
	var zero T
	if obj == zero {
		return Ref[T]{}
	}
	obj.IncRef()
	return Ref[T]{obj: obj}
}

// Adopt wraps an object whose strong count already accounts for this
// ownership, typically one detached from another handle. No count change.
func Adopt[T Managed](obj T) Ref[T] {
	return Ref[T]{obj: obj}
}

// Get returns the raw object, or the zero value for an empty handle. The
// returned pointer is a non-authoritative view: it must not outlive the
// handle and never extends the object's lifetime.
func (r Ref[T]) Get() T {
	return r.obj
}

// IsNil reports whether the handle is empty.
func (r Ref[T]) IsNil() bool {
	var zero T
	return r.obj == zero
}

// UseCount returns the object's current strong count, or 0 for an empty
// handle. The value is a snapshot; under concurrent use it may be stale by
// the time the caller inspects it.
func (r Ref[T]) UseCount() int32 {
	if r.IsNil() {
		return 0
	}
	return r.obj.RefCount()
}

// IsUnique reports whether this handle is the only strong owner.
func (r Ref[T]) IsUnique() bool {
	return r.UseCount() == 1
}

// Clone adds a strong owner and returns the new handle.
func (r Ref[T]) Clone() Ref[T] {
	if !r.IsNil() {
		r.obj.IncRef()
	}
	return Ref[T]{obj: r.obj}
}

// Release drops this handle's ownership and empties it. Dropping the last
// owner retires the object's registry entry (if it was ever weakly observed)
// and runs its Dispose method. Releasing an empty handle is a no-op.
func (r *Ref[T]) Release() {
	var zero T
	if r.obj == zero {
		return
	}
	obj := r.obj
	r.obj = zero
	release(obj)
}

// Assign makes r share ownership with other, releasing whatever r held
// before. Assigning a handle to itself (same pointee) is a no-op.
func (r *Ref[T]) Assign(other Ref[T]) {
	if r.obj == other.obj {
		return
	}
	old := r.obj
	*r = other.Clone()
	var zero T
	if old != zero {
		release(old)
	}
}

// Move transfers ownership out of r into the returned handle with no count
// change; r is left empty.
func (r *Ref[T]) Move() Ref[T] {
	out := Ref[T]{obj: r.obj}
	var zero T
	r.obj = zero
	return out
}

// TakeFrom moves other's ownership into r, releasing whatever r held before.
// other is left empty. Moving a handle into itself releases it and leaves it
// empty rather than corrupting the count.
func (r *Ref[T]) TakeFrom(other *Ref[T]) {
	if r == other {
		r.Release()
		return
	}
	old := r.obj
	r.obj = other.obj
	var zero T
	other.obj = zero
	if old != zero {
		release(old)
	}
}

// Reset releases the current object and adopts obj, whose count must already
// account for this ownership (New-style contract: freshly constructed
// objects carry a pre-established count of 1 via Adopt, or pass the zero
// value to just empty the handle). Resetting to the currently held object is
// a no-op.
func (r *Ref[T]) Reset(obj T) {
	if r.obj == obj {
		return
	}
	old := r.obj
	r.obj = obj
	var zero T
	if old != zero {
		release(old)
	}
}

// Detach surrenders ownership without releasing it: the handle is emptied
// and the raw object is returned with its count intact. The caller inherits
// the ownership the handle held, typically to hand the object to a foreign
// owner that will Adopt it later. The count stays the single authority over
// the object's fate throughout.
func (r *Ref[T]) Detach() T {
	obj := r.obj
	var zero T
	r.obj = zero
	return obj
}

// Swap exchanges the objects held by two handles with zero count mutation.
func (r *Ref[T]) Swap(other *Ref[T]) {
	r.obj, other.obj = other.obj, r.obj
}

// Equal reports identity: both handles refer to the same object, or both
// are empty.
func (r Ref[T]) Equal(other Ref[T]) bool {
	return r.obj == other.obj
}

// Equater is implemented by managed types that support structural equality.
type Equater interface {
	Equals(other any) bool
}

// EqualValue reports structural equality by delegating to the pointee's
// Equals method. Handles to the same object are always equal; if the pointee
// does not implement Equater, EqualValue falls back to identity.
func (r Ref[T]) EqualValue(other Ref[T]) bool {
	if r.obj == other.obj {
		return true
	}
	if r.IsNil() || other.IsNil() {
		return false
	}
	if eq, ok := any(r.obj).(Equater); ok {
		return eq.Equals(any(other.obj))
	}
	return false
}

// Weak returns a weak observer of the held object. Observing an empty
// handle yields an empty, already-expired WeakRef.
func (r Ref[T]) Weak() WeakRef[T] {
	if r.IsNil() {
		return WeakRef[T]{}
	}
	return WeakOf(r.obj)
}

// As reinterprets the handle as referring to U and shares ownership. The
// cast is unchecked: the caller must have verified the object's dynamic
// type, and a mismatch traps at the type assertion. Use TryAs when the type
// is not known to be correct.
func As[U, T Managed](r Ref[T]) Ref[U] {
	if r.IsNil() {
		return Ref[U]{}
	}
	u := any(r.obj).(U)
	u.IncRef()
	return Ref[U]{obj: u}
}

// TryAs performs a checked cast to U. It returns an empty handle if the
// object's dynamic type is not a U, otherwise a sharing, count-incremented
// handle to the same object. Works for upcasts to interface types and
// downcasts back to concrete types alike.
func TryAs[U, T Managed](r Ref[T]) Ref[U] {
	if r.IsNil() {
		return Ref[U]{}
	}
	u, ok := any(r.obj).(U)
	if !ok {
		return Ref[U]{}
	}
	u.IncRef()
	return Ref[U]{obj: u}
}

// release drops one strong owner of obj and, on the zero transition, retires
// the registry entry and disposes the object. Retirement resolves by the
// object's dynamic identity, not the handle's static type, so the last
// release may flow through a cast (interface-typed) handle and still reach
// the block the weak observers registered. A count going negative is a
// caller bug (more releases than owners); it is reported, not fatal.
func release[T Managed](obj T) {
	n := obj.DecRef()
	if n > 0 {
		return
	}
	if n < 0 {
		errors.Report(&errors.EditorError{
			Op:   "ref.Release",
			Kind: errors.KindLifetime,
			Err:  &errors.LifetimeError{Op: "ref.Release", Type: fmt.Sprintf("%T", obj), Count: n},
		})
		return
	}
	if g := lookupRegistry(obj); g != nil {
		g.retire(obj)
	}
	if d, ok := any(obj).(Disposable); ok {
		d.Dispose()
	}
}
