// Package scene provides the editor's scene graph: reference-counted nodes
// owned top-down through strong handles, with parent links held as weak
// observers so node trees never form strong cycles.
//
// A node keeps its children alive; a child can reach its parent through
// Parent() while the parent exists, but never extends its lifetime. Tearing
// down a scene is therefore a single Release of the root handle.
package scene
