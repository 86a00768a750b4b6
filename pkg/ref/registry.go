package ref

import (
	"reflect"
	"sync"
)

// registry maps live object addresses to their control blocks for one
// managed type. Keys are the objects themselves boxed as interface values,
// which compare by dynamic type and address, so handles of different static
// types (a concrete pointer and an interface-typed view of the same object)
// resolve to one entry. At most one block exists per live address; the
// entry is removed exactly once, by the strong-owner side, before the
// object is disposed. Only block creation and retirement take the registry
// mutex — Lock and Expired work on the block alone.
type registry struct {
	mu     sync.Mutex
	blocks map[any]*controlBlock
}

// getOrCreate returns the control block tracking obj, inserting a fresh one
// on first weak observation of that address.
func (g *registry) getOrCreate(obj any) *controlBlock {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.blocks[obj]; ok {
		return b
	}
	b := &controlBlock{target: obj}
	g.blocks[obj] = b
	return b
}

// retire removes obj's entry and marks its block dead. Called exactly once
// per tracked object, at the strong count's zero transition, before Dispose
// runs. Outstanding observers keep the block reachable until the last one
// releases; after retire they all report Expired.
func (g *registry) retire(obj any) {
	g.mu.Lock()
	b, ok := g.blocks[obj]
	if ok {
		delete(g.blocks, obj)
	}
	g.mu.Unlock()
	if ok {
		b.clear()
	}
}

// len reports the number of tracked addresses. Test hook.
func (g *registry) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.blocks)
}

// Per-type registries, created lazily on first weak observation of a type
// and kept for the life of the process. Keyed by the managed object's
// dynamic type: a handle's static type never decides which registry an
// object lives in, so releasing the last owner through a cast handle still
// retires the entry its weak observers registered.
var (
	registriesMu sync.Mutex
	registries   = make(map[reflect.Type]*registry)
)

// registryFor returns the registry for obj's dynamic type, creating it on
// first use.
func registryFor(obj any) *registry {
	key := reflect.TypeOf(obj)
	registriesMu.Lock()
	defer registriesMu.Unlock()
	if g, ok := registries[key]; ok {
		return g
	}
	g := &registry{blocks: make(map[any]*controlBlock)}
	registries[key] = g
	return g
}

// lookupRegistry returns the registry for obj's dynamic type if one was
// ever created, or nil. The release path uses it so that types never weakly
// observed do not grow a registry just to find no entry in it.
func lookupRegistry(obj any) *registry {
	key := reflect.TypeOf(obj)
	registriesMu.Lock()
	defer registriesMu.Unlock()
	return registries[key]
}
