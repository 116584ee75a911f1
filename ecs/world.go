package ecs

import "reflect"

// Entity is an opaque handle naming a slot in a World at a particular
// version. A handle aliases a live entity only while the slot's current
// version matches.
type Entity struct {
	ID      uint32
	Version uint32
}

// entityData is the per-slot bookkeeping the World keeps: the slot's
// current version and the component mask of whatever currently occupies it.
type entityData struct {
	version uint32
	mask    Mask
	alive   bool
}

// ComponentID identifies a registered component family, 0..MaxComponents-1.
type ComponentID int

// World owns entity slots, the component-family registry, and every
// ComponentStorage. It is not safe for concurrent mutation and has no
// internal locking.
type World struct {
	entities []entityData
	freeIDs  []uint32

	componentIDs map[reflect.Type]ComponentID
	storages     []storage // indexed by ComponentID
	typeOf       []reflect.Type

	initialEntityCap int
}

// NewWorld constructs an empty World. initialEntityCapacity seeds the
// capacity of the entity-slot vector; it is not a hard limit, just a
// preallocation hint (default 128 per engine configuration). Component
// sparse arrays are sized to the current slot count when a family is first
// registered.
func NewWorld(initialEntityCapacity int) *World {
	if initialEntityCapacity <= 0 {
		initialEntityCapacity = 128
	}
	return &World{
		entities:         make([]entityData, 0, initialEntityCapacity),
		componentIDs:     make(map[reflect.Type]ComponentID),
		initialEntityCap: initialEntityCapacity,
	}
}

// CreateEntity allocates a new entity, reusing a freed slot when available.
func (w *World) CreateEntity() Entity {
	if n := len(w.freeIDs); n > 0 {
		id := w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
		d := &w.entities[id]
		d.alive = true
		d.mask = Mask{}
		return Entity{ID: id, Version: d.version}
	}

	id := uint32(len(w.entities))
	w.entities = append(w.entities, entityData{version: 0, alive: true})
	newCap := len(w.entities)
	for _, s := range w.storages {
		s.grow(newCap)
	}
	return Entity{ID: id, Version: 0}
}

// IsAlive reports whether e still names a live entity.
func (w *World) IsAlive(e Entity) bool {
	if int(e.ID) >= len(w.entities) {
		return false
	}
	d := w.entities[e.ID]
	return d.alive && d.version == e.Version
}

// RemoveEntity removes e if it is currently live: its slot's version is
// bumped (invalidating all outstanding handles), its mask is cleared, and
// every registered storage drops its component for the slot. Returns
// ErrEntityNotFound for a stale or unknown handle.
func (w *World) RemoveEntity(e Entity) error {
	if !w.IsAlive(e) {
		return ErrEntityNotFound
	}
	id := e.ID
	for _, s := range w.storages {
		s.removeIfPresent(int(id))
	}
	d := &w.entities[id]
	d.alive = false
	d.mask = Mask{}
	d.version++
	w.freeIDs = append(w.freeIDs, id)
	return nil
}

func componentType[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

// componentStorage returns the registered storage for T, creating it (and
// assigning the next ComponentID) on first use. Fails if the family cap
// would be exceeded.
func componentStorage[T any](w *World) (*ComponentStorage[T], ComponentID, error) {
	t := componentType[T]()
	if id, ok := w.componentIDs[t]; ok {
		return w.storages[id].(*ComponentStorage[T]), id, nil
	}
	if len(w.storages) >= MaxComponents {
		return nil, 0, ErrComponentFamilyFull
	}
	id := ComponentID(len(w.storages))
	s := NewComponentStorage[T](len(w.entities))
	w.componentIDs[t] = id
	w.storages = append(w.storages, s)
	w.typeOf = append(w.typeOf, t)
	return s, id, nil
}

// lookupComponentID returns the ComponentID for T if it has ever been
// registered in w, without registering it.
func lookupComponentID[T any](w *World) (ComponentID, bool) {
	id, ok := w.componentIDs[componentType[T]()]
	return id, ok
}

// AddComponent attaches value as entity e's component of type T, creating
// the family on first use. Overwrites any existing value of the same type.
func AddComponent[T any](w *World, e Entity, value T) error {
	if !w.IsAlive(e) {
		return ErrEntityNotFound
	}
	s, id, err := componentStorage[T](w)
	if err != nil {
		return err
	}
	s.Add(int(e.ID), value)
	w.entities[e.ID].mask.Set(int(id), true)
	return nil
}

// RemoveComponent detaches entity e's component of type T, if present.
// Removing an unregistered or absent component type is a no-op.
func RemoveComponent[T any](w *World, e Entity) error {
	if !w.IsAlive(e) {
		return ErrEntityNotFound
	}
	id, ok := lookupComponentID[T](w)
	if !ok {
		return nil
	}
	w.storages[id].removeIfPresent(int(e.ID))
	w.entities[e.ID].mask.Set(int(id), false)
	return nil
}

// GetComponent returns a pointer to entity e's component of type T. Returns
// ErrEntityNotFound for a stale handle and (nil, nil) when the entity is
// live but does not carry T.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	if !w.IsAlive(e) {
		return nil, ErrEntityNotFound
	}
	id, ok := lookupComponentID[T](w)
	if !ok {
		return nil, nil
	}
	if !w.entities[e.ID].mask.Get(int(id)) {
		return nil, nil
	}
	s := w.storages[id].(*ComponentStorage[T])
	v, _ := s.Get(int(e.ID))
	return v, nil
}

// HasComponent reports whether live entity e carries component T.
func HasComponent[T any](w *World, e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	id, ok := lookupComponentID[T](w)
	if !ok {
		return false
	}
	return w.entities[e.ID].mask.Get(int(id))
}

// ListComponents returns the ComponentIDs present on live entity e.
func (w *World) ListComponents(e Entity) []ComponentID {
	if !w.IsAlive(e) {
		return nil
	}
	m := w.entities[e.ID].mask
	var out []ComponentID
	for id := 0; id < len(w.storages); id++ {
		if m.Get(id) {
			out = append(out, ComponentID(id))
		}
	}
	return out
}

// EntityCount returns the number of currently live entities.
func (w *World) EntityCount() int {
	n := 0
	for i := range w.entities {
		if w.entities[i].alive {
			n++
		}
	}
	return n
}
