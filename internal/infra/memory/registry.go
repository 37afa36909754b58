package memory

import (
	"sync"

	"pantrylink/internal/domain/entity"
)

// Registry is the set of live view entities, keyed by their derived stable
// identifier. It is the only writer of the key to entity mapping; the sync
// pipeline converges its membership against the snapshot after every
// refresh.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]entity.View
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]entity.View)}
}

// Add registers a view under its derived key. Adding an existing key is a
// no-op and returns false; the first registration wins.
func (r *Registry) Add(view entity.View) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := view.Key()
	if _, ok := r.entities[key]; ok {
		return false
	}
	r.entities[key] = view
	r.order = append(r.order, key)

	return true
}

// Get returns the view registered under key.
func (r *Registry) Get(key string) (entity.View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	view, ok := r.entities[key]

	return view, ok
}

// GetByBarcode scans registered product views and returns the one whose
// first barcode equals the query.
func (r *Registry) GetByBarcode(barcode string) (entity.View, bool) {
	if barcode == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range r.order {
		product, ok := r.entities[key].(*entity.ProductView)
		if !ok {
			continue
		}
		if product.FirstBarcode() == barcode {
			return product, true
		}
	}

	return nil, false
}

// AllOfKind returns every registered view with the given variant tag, in
// registration order.
func (r *Registry) AllOfKind(kind entity.Kind) []entity.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var views []entity.View
	for _, key := range r.order {
		if view := r.entities[key]; view.Kind() == kind {
			views = append(views, view)
		}
	}

	return views
}

// All returns every registered view in registration order.
func (r *Registry) All() []entity.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]entity.View, 0, len(r.order))
	for _, key := range r.order {
		views = append(views, r.entities[key])
	}

	return views
}

// Remove unregisters a key and reports whether it existed.
func (r *Registry) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[key]; !ok {
		return false
	}
	delete(r.entities, key)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return true
}

// Exists reports whether a key is registered.
func (r *Registry) Exists(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entities[key]

	return ok
}
