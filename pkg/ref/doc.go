// Package ref provides the intrusive shared/weak ownership primitive used to
// manage the lifetime of long-lived editor objects (scenes, assets, GPU
// resource wrappers, panels) without relying on finalizers.
//
// A type becomes manageable by embedding RefCounted:
//
//	type Texture struct {
//	    ref.RefCounted
//	    // ...
//	}
//
// Objects are created through the New factory, which establishes the first
// strong owner:
//
//	tex := ref.New(&Texture{Path: "runway.png"})
//	defer tex.Release()
//
// # Strong handles
//
// Ref[T] is an owning handle. Go has no copy constructors, so ownership
// transfers are explicit: Clone adds an owner, Release drops one, Move
// transfers without touching the count. When the last strong owner is
// released the object's Dispose method (if it implements Disposable) runs
// exactly once, on the goroutine that dropped the last owner.
//
// # Weak handles
//
// WeakRef[T] observes an object without keeping it alive:
//
//	w := tex.Weak()
//	defer w.Release()
//	if r := w.Lock(); !r.IsNil() {
//	    defer r.Release()
//	    // the object is guaranteed alive for r's lifetime
//	}
//
// Lock uses an atomic increment-if-nonzero on the strong count, so it is
// safe against a concurrent release of the last strong owner: it either
// obtains a fully valid owner or returns an empty handle, never a handle to
// a disposed object.
//
// # Memory vs. resources
//
// The Go runtime reclaims memory; this package governs *resource* lifetime.
// "Destruction" means the deterministic, exactly-once Dispose call. Raw
// pointers obtained through Get are non-authoritative views: they must not
// outlive the handle they came from, and they never extend the resource's
// lifetime.
//
// Strong-reference cycles are never collected. Break them by releasing one
// edge or by making one edge a WeakRef (the scene package's parent links are
// the canonical example).
package ref
