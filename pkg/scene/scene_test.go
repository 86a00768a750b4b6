package scene

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/ref"
)

// linkedPanel models two UI panels that strongly reference each other, the
// shape that produces ownership cycles when both edges are strong.
type linkedPanel struct {
	ref.RefCounted
	disposed *atomic.Int32

	mu   sync.Mutex
	peer ref.Ref[*linkedPanel]
}

func (p *linkedPanel) Dispose() {
	p.disposed.Add(1)
	p.clearPeer()
}

func (p *linkedPanel) setPeer(other ref.Ref[*linkedPanel]) {
	owned := other.Clone()
	p.mu.Lock()
	old := p.peer
	p.peer = owned
	p.mu.Unlock()
	old.Release()
}

func (p *linkedPanel) clearPeer() {
	p.mu.Lock()
	old := p.peer
	p.peer = ref.Ref[*linkedPanel]{}
	p.mu.Unlock()
	old.Release()
}

func newPanel(disposed *atomic.Int32) ref.Ref[*linkedPanel] {
	return ref.New(&linkedPanel{disposed: disposed})
}

// A two-node strong cycle leaks until one edge is nulled; nulling it must
// destroy both nodes.
func TestStrongCycleBreaksByNullingOneEdge(t *testing.T) {
	var disposed atomic.Int32

	a := newPanel(&disposed)
	b := newPanel(&disposed)

	a.Get().setPeer(b)
	b.Get().setPeer(a)

	b.Release()
	if got := disposed.Load(); got != 0 {
		t.Fatalf("disposed %d nodes while the cycle holds them, want 0", got)
	}

	// Null the a→b edge: b dies, and b's disposal releases its a edge.
	a.Get().clearPeer()
	if got := disposed.Load(); got != 1 {
		t.Fatalf("disposed %d nodes after breaking one edge, want 1", got)
	}

	a.Release()
	if got := disposed.Load(); got != 2 {
		t.Fatalf("disposed %d nodes, want 2", got)
	}
}

// With the parent edge weak, a parent/child pair needs no manual breaking:
// releasing the external handles destroys both.
func TestWeakParentEdgeAvoidsCycle(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")

	parent.Get().AddChild(child)

	wp := parent.Weak()
	wc := child.Weak()
	defer wp.Release()
	defer wc.Release()

	child.Release()
	if wc.Expired() {
		t.Fatal("child should stay alive through its parent")
	}

	parent.Release()
	if !wp.Expired() {
		t.Error("parent should be destroyed once its external owner drops")
	}
	if !wc.Expired() {
		t.Error("child should be destroyed with its parent, no manual break needed")
	}
}

func TestAddChildAndParent(t *testing.T) {
	parent := NewNode("parent")
	defer parent.Release()
	child := NewNode("child")
	defer child.Release()

	parent.Get().AddChild(child)

	if got := parent.Get().ChildCount(); got != 1 {
		t.Fatalf("ChildCount() = %d, want 1", got)
	}
	if got := child.UseCount(); got != 2 {
		t.Errorf("child UseCount() = %d, want 2 (caller + parent)", got)
	}

	p := child.Get().Parent()
	if p.IsNil() {
		t.Fatal("Parent() should resolve while the parent is alive")
	}
	if p.Get() != parent.Get() {
		t.Error("Parent() should reach the attaching node")
	}
	p.Release()
}

func TestParentExpiresWithParent(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	defer child.Release()

	parent.Get().AddChild(child)
	parent.Release()

	if got := child.UseCount(); got != 1 {
		t.Fatalf("child UseCount() after parent death = %d, want 1", got)
	}
	if p := child.Get().Parent(); !p.IsNil() {
		t.Error("Parent() should be empty after the parent is destroyed")
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	defer parent.Release()
	child := NewNode("child")
	defer child.Release()

	parent.Get().AddChild(child)
	if !parent.Get().RemoveChild(child) {
		t.Fatal("RemoveChild should find an attached child")
	}
	if got := parent.Get().ChildCount(); got != 0 {
		t.Errorf("ChildCount() = %d, want 0", got)
	}
	if got := child.UseCount(); got != 1 {
		t.Errorf("child UseCount() = %d, want 1", got)
	}
	if p := child.Get().Parent(); !p.IsNil() {
		t.Error("detached child should have no parent")
	}
	if parent.Get().RemoveChild(child) {
		t.Error("RemoveChild should report a missing child")
	}
}

func TestWalkVisitsTree(t *testing.T) {
	root := NewNode("root")
	defer root.Release()

	for _, name := range []string{"a", "b"} {
		child := NewNode(name)
		root.Get().AddChild(child)
		grand := NewNode(name + "/leaf")
		child.Get().AddChild(grand)
		grand.Release()
		child.Release()
	}

	var visited []string
	root.Get().Walk(func(n *Node) {
		visited = append(visited, n.Name())
	})

	want := []string{"root", "a", "a/leaf", "b", "b/leaf"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestSceneOwnsTree(t *testing.T) {
	s := NewScene("airport")

	root := s.Get().Root()
	child := NewNode("tower")
	root.Get().AddChild(child)

	wRoot := root.Weak()
	wChild := child.Weak()
	defer wRoot.Release()
	defer wChild.Release()

	child.Release()
	root.Release()

	if wRoot.Expired() || wChild.Expired() {
		t.Fatal("tree should stay alive through the scene")
	}

	s.Release()
	if !wRoot.Expired() || !wChild.Expired() {
		t.Error("releasing the scene should tear down the whole tree")
	}
}

// A panel may end up holding the only owner of a node as an Object handle;
// releasing it must still tear the node down and expire its observers.
func TestObjectHandleTearsDownNode(t *testing.T) {
	node := NewNode("held-as-object")
	obj := ref.TryAs[Object](node)

	w := node.Weak()
	defer w.Release()

	node.Release()
	if w.Expired() {
		t.Fatal("node should stay alive through the Object handle")
	}

	obj.Release()
	if !w.Expired() {
		t.Error("node should be destroyed when its Object handle releases")
	}
	if got := w.Lock(); !got.IsNil() {
		t.Error("Lock() on a destroyed node should be empty")
	}
}

func TestObjectCasts(t *testing.T) {
	node := NewNode("n")
	defer node.Release()

	obj := ref.TryAs[Object](node)
	if obj.IsNil() {
		t.Fatal("nodes should upcast to Object")
	}
	if obj.Get().Name() != "n" {
		t.Error("upcast handle should reach the same node")
	}

	back := ref.TryAs[*Node](obj)
	if back.IsNil() || back.Get() != node.Get() {
		t.Error("downcast should yield an identical address")
	}
	back.Release()

	wrong := ref.TryAs[*Scene](obj)
	if !wrong.IsNil() {
		t.Error("downcast to an unrelated type should be empty")
	}

	obj.Release()
	if got := node.UseCount(); got != 1 {
		t.Errorf("UseCount() after casts = %d, want 1", got)
	}
}
