package scene

import (
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/ref"
)

// Scene owns a node tree through its root handle. Panels and tools hold
// scenes in Ref fields and observe them with WeakRefs; the tree is torn down
// when the last owner of the scene drops.
type Scene struct {
	ref.RefCounted

	name string
	root ref.Ref[*Node]
}

// NewScene creates a scene with a fresh root node.
func NewScene(name string) ref.Ref[*Scene] {
	return ref.New(&Scene{
		name: name,
		root: NewNode(name + "/root"),
	})
}

// Name returns the scene's display name.
func (s *Scene) Name() string {
	return s.name
}

// Root returns a strong handle to the root node.
func (s *Scene) Root() ref.Ref[*Node] {
	return s.root.Clone()
}

// Dispose releases the root, tearing down the tree. Runs once, when the
// last strong owner drops.
func (s *Scene) Dispose() {
	s.root.Release()
}
