// Package asset provides the editor's texture asset manager. Textures are
// reference-counted; the manager holds only weak observers, so a texture's
// pixel data lives exactly as long as something in the editor owns it, while
// repeated loads of the same path share one decoded copy.
package asset
