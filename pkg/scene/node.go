package scene

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/ref"
)

// Object is the capability shared by everything the editor places in a
// scene: a reference-counted thing with a name.
type Object interface {
	ref.Counter
	Name() string
}

// Node is one element of the scene graph. Children are owned strongly;
// the parent link is a weak observer, so ownership flows strictly downward
// and releasing the root releases the whole tree.
type Node struct {
	ref.RefCounted

	name string

	mu       sync.Mutex
	parent   ref.WeakRef[*Node]
	children []ref.Ref[*Node]
}

// NewNode creates a detached node and returns its owning handle.
func NewNode(name string) ref.Ref[*Node] {
	return ref.New(&Node{name: name})
}

// Name returns the node's display name.
func (n *Node) Name() string {
	return n.name
}

// AddChild attaches child under n. The node takes its own ownership of the
// child; the caller's handle is untouched. The child's previous parent link
// is replaced.
func (n *Node) AddChild(child ref.Ref[*Node]) {
	if child.IsNil() {
		return
	}
	owned := child.Clone()
	owned.Get().setParent(n)
	n.mu.Lock()
	n.children = append(n.children, owned)
	n.mu.Unlock()
}

// RemoveChild detaches the first child matching the handle and releases the
// node's ownership of it. Returns false if the child is not attached here.
func (n *Node) RemoveChild(child ref.Ref[*Node]) bool {
	if child.IsNil() {
		return false
	}
	n.mu.Lock()
	for i := range n.children {
		if n.children[i].Equal(child) {
			owned := n.children[i]
			n.children = append(n.children[:i], n.children[i+1:]...)
			n.mu.Unlock()
			owned.Get().clearParent()
			owned.Release()
			return true
		}
	}
	n.mu.Unlock()
	return false
}

// Parent returns a strong handle to the parent, or an empty handle if the
// node is detached or the parent has already been destroyed.
func (n *Node) Parent() ref.Ref[*Node] {
	n.mu.Lock()
	w := n.parent
	n.mu.Unlock()
	return w.Lock()
}

// ChildCount returns the number of directly attached children.
func (n *Node) ChildCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}

// Walk visits n and every node below it, depth first. Children are locked
// into local handles for the duration of their visit.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	n.mu.Lock()
	children := make([]ref.Ref[*Node], len(n.children))
	for i := range n.children {
		children[i] = n.children[i].Clone()
	}
	n.mu.Unlock()
	for i := range children {
		children[i].Get().Walk(visit)
		children[i].Release()
	}
}

// Dispose releases the node's children and its parent observer. Runs once,
// when the last strong owner drops.
func (n *Node) Dispose() {
	n.mu.Lock()
	children := n.children
	n.children = nil
	parent := n.parent
	n.parent = ref.WeakRef[*Node]{}
	n.mu.Unlock()

	parent.Release()
	for i := range children {
		children[i].Get().clearParent()
		children[i].Release()
	}
}

func (n *Node) setParent(parent *Node) {
	w := ref.WeakOf(parent)
	n.mu.Lock()
	old := n.parent
	n.parent = w
	n.mu.Unlock()
	old.Release()
}

func (n *Node) clearParent() {
	n.mu.Lock()
	old := n.parent
	n.parent = ref.WeakRef[*Node]{}
	n.mu.Unlock()
	old.Release()
}
