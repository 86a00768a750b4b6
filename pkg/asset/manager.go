package asset

import (
	stderrors "errors"
	"io/fs"
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/errors"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/ref"
)

// Manager deduplicates texture loads. It caches weak observers keyed by
// path: while any part of the editor owns a texture, loads of the same path
// share it; once the last owner releases, the texture is disposed and the
// next load decodes it afresh.
type Manager struct {
	mu       sync.Mutex
	textures map[string]ref.WeakRef[*Texture]
}

// NewManager creates an empty texture manager.
func NewManager() *Manager {
	return &Manager{textures: make(map[string]ref.WeakRef[*Texture])}
}

// Load returns an owning handle to the texture at path, decoding it if no
// live copy exists. Failures are reported and returned wrapped; the caller
// gets an empty handle.
func (m *Manager) Load(path string) (ref.Ref[*Texture], error) {
	m.mu.Lock()
	if w, ok := m.textures[path]; ok {
		if r := w.Lock(); !r.IsNil() {
			m.mu.Unlock()
			return r, nil
		}
		w.Release()
		delete(m.textures, path)
	}
	m.mu.Unlock()

	tex, err := decodeTexture(path)
	if err != nil {
		kind := errors.KindDecode
		if stderrors.Is(err, fs.ErrNotExist) {
			kind = errors.KindAsset
		}
		errors.Report(&errors.EditorError{
			Op:    "asset.Manager.Load",
			Kind:  kind,
			Asset: path,
			Err:   err,
		})
		return ref.Ref[*Texture]{}, err
	}

	r := ref.New(tex)

	m.mu.Lock()
	// A concurrent load may have cached the path first; keep whichever copy
	// is already live so callers converge on one texture.
	if w, ok := m.textures[path]; ok {
		if existing := w.Lock(); !existing.IsNil() {
			m.mu.Unlock()
			r.Release()
			return existing, nil
		}
		w.Release()
	}
	m.textures[path] = r.Weak()
	m.mu.Unlock()

	return r, nil
}

// Lookup returns an owning handle to a live cached texture, or an empty
// handle without touching the filesystem.
func (m *Manager) Lookup(path string) ref.Ref[*Texture] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.textures[path]; ok {
		return w.Lock()
	}
	return ref.Ref[*Texture]{}
}

// Sweep drops cache entries whose textures have been disposed and returns
// how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for path, w := range m.textures {
		if w.Expired() {
			w.Release()
			delete(m.textures, path)
			removed++
		}
	}
	return removed
}

// Len returns the number of cache entries, live or expired.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.textures)
}
