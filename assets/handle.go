package assets

// Handle is a refcounted, typed view over an asset instance loaded by an
// AssetServer. Handles are cloneable; the underlying value is released from
// the server's loaded map when the last clone is dropped.
//
// Go has no destructors, so callers must call Drop explicitly when they are
// done with a handle (e.g. on entity/material teardown) rather than relying
// on scope exit.
type Handle[A any] struct {
	server *AssetServer
	id     ID
	value  *A
}

// ID returns the asset ID this handle refers to.
func (h *Handle[A]) ID() ID { return h.id }

// Get returns a pointer to the shared, interior-mutable asset instance.
func (h *Handle[A]) Get() *A { return h.value }

// Clone increments the server's refcount for this asset and returns a new
// independent Handle pointing at the same instance.
func (h *Handle[A]) Clone() *Handle[A] {
	h.server.mu.Lock()
	if r, ok := h.server.loaded[h.id]; ok {
		r.refCount++
	}
	h.server.mu.Unlock()
	return &Handle[A]{server: h.server, id: h.id, value: h.value}
}

// Drop releases this handle's reference. If it was the last live handle for
// this ID, the server's loaded-map entry is removed. Safe to call multiple
// times; subsequent calls are no-ops.
func (h *Handle[A]) Drop() {
	if h.server == nil {
		return
	}
	h.server.mu.Lock()
	if r, ok := h.server.loaded[h.id]; ok {
		r.refCount--
		if r.refCount <= 0 {
			delete(h.server.loaded, h.id)
		}
	}
	h.server.mu.Unlock()
	h.server = nil
}
