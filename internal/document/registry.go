package document

import "sync"

// Registry maps tab handles to the filesystem path each tab was last saved
// to or opened from. A missing entry means the tab has never been saved.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	paths map[Handle]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{paths: make(map[Handle]string)}
}

// Register associates path with h, replacing any previous association.
// An empty path removes the association.
func (r *Registry) Register(h Handle, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == "" {
		delete(r.paths, h)
		return
	}
	r.paths[h] = path
}

// Lookup returns the path associated with h, or "" if there is none.
func (r *Registry) Lookup(h Handle) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paths[h]
}

// Unregister removes the association for h. It is a no-op if absent.
func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, h)
}

// Len returns the number of registered tabs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}
