package ecs

import (
	"fmt"
	"log"
	"slices"
)

// Handle refers to an entity across frames. A handle goes stale once its
// entity has been destroyed and refreshed away; resolving it then fails
// instead of reaching a recycled entity.
type Handle struct {
	index uint32
	gen   uint32
}

// NilHandle never resolves.
var NilHandle Handle

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool { return h.gen == 0 }

func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.index, h.gen) }

type handleSlot struct {
	entity *Entity
	gen    uint32
}

// Manager owns entities, the per-group draw index and deferred destruction.
// It is not safe for concurrent use; all calls happen on the tick goroutine.
type Manager struct {
	registry *Registry
	logger   *log.Logger

	entities []*Entity
	groups   [MaxGroups][]*Entity

	slots []handleSlot
	free  []uint32
}

// NewManager creates a Manager that allocates component tags from reg.
// A nil reg gets a private Registry.
func NewManager(reg *Registry) *Manager {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Manager{registry: reg}
}

// Registry returns the component type registry used by m.
func (m *Manager) Registry() *Registry { return m.registry }

// SetLogger redirects contract-violation reports. nil restores the
// standard logger.
func (m *Manager) SetLogger(l *log.Logger) { m.logger = l }

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
		return
	}
	log.Printf("ecs: "+format, args...)
}

// checkType validates a component type the first time it is attached.
func (m *Manager) checkType(tag Tag, c Component) {
	if m.registry.checked[tag] {
		return
	}
	checkData(c)
	m.registry.checked[tag] = true
}

// Create adds a new entity and returns it. The pointer is valid until the
// entity is destroyed and refreshed away.
func (m *Manager) Create() *Entity { return m.CreateNamed("") }

// CreateNamed is Create with a debug name shown in diagnostics.
func (m *Manager) CreateNamed(name string) *Entity {
	e := newEntity(m, name)
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, handleSlot{gen: 1})
	}
	m.slots[idx].entity = e
	e.handle = Handle{index: idx, gen: m.slots[idx].gen}
	m.entities = append(m.entities, e)
	return e
}

// Resolve returns the entity h refers to, or false if h is stale.
// Destroyed entities still resolve until the next Refresh.
func (m *Manager) Resolve(h Handle) (*Entity, bool) {
	if h.IsNil() || int(h.index) >= len(m.slots) {
		return nil, false
	}
	s := m.slots[h.index]
	if s.gen != h.gen || s.entity == nil {
		return nil, false
	}
	return s.entity, true
}

// MustResolve is Resolve that panics on a stale handle.
func (m *Manager) MustResolve(h Handle) *Entity {
	e, ok := m.Resolve(h)
	if !ok {
		panic(fmt.Sprintf("ecs: stale entity handle %s", h))
	}
	return e
}

// Len returns the number of stored entities, including ones pending removal.
func (m *Manager) Len() int { return len(m.entities) }

// Entities returns stored entities in creation order. The slice is owned by
// m and is only valid until the next Create or Refresh.
func (m *Manager) Entities() []*Entity { return m.entities }

// Initialize re-runs component initialization on every stored entity.
func (m *Manager) Initialize() {
	for _, e := range m.entities {
		e.Initialize()
	}
}

// Update updates active entities in creation order. Entities created during
// the pass are first updated on the next call.
func (m *Manager) Update() {
	n := len(m.entities)
	for i := 0; i < n && i < len(m.entities); i++ {
		if e := m.entities[i]; e.active {
			e.Update()
		}
	}
}

// Draw2D draws active entities in creation order.
func (m *Manager) Draw2D() {
	n := len(m.entities)
	for i := 0; i < n && i < len(m.entities); i++ {
		if e := m.entities[i]; e.active {
			e.Draw2D()
		}
	}
}

// Draw3D draws active entities in creation order.
func (m *Manager) Draw3D() {
	n := len(m.entities)
	for i := 0; i < n && i < len(m.entities); i++ {
		if e := m.entities[i]; e.active {
			e.Draw3D()
		}
	}
}

// DrawByGroup draws groups 0..maxGroup-1 in ascending order, each group in
// the order its members joined. Lower groups end up behind higher ones.
// Entries that are dead or have left the group are skipped.
func (m *Manager) DrawByGroup(maxGroup Group) {
	if uint(maxGroup) > MaxGroups {
		panic(fmt.Sprintf("ecs: DrawByGroup(%d) exceeds group capacity %d", maxGroup, MaxGroups))
	}
	for g := Group(0); g < maxGroup; g++ {
		members := m.groups[g]
		n := len(members)
		for i := 0; i < n; i++ {
			e := members[i]
			if e.active && e.groups.test(uint(g)) {
				e.Draw2D()
			}
		}
	}
}

// EntitiesByGroup returns the index for g. Until the next Refresh it may
// still hold destroyed entities or entities that have left g.
func (m *Manager) EntitiesByGroup(g Group) []*Entity {
	checkGroup(g)
	return m.groups[g]
}

func (m *Manager) addToGroup(e *Entity, g Group) {
	m.groups[g] = append(m.groups[g], e)
}

// Refresh is the single point where lifecycle changes take effect: group
// indexes lose dead entities and entities that left the group, then dead
// entities are dropped from storage and their handles retired.
// Call it once per tick, before Update.
func (m *Manager) Refresh() {
	for g := range m.groups {
		if len(m.groups[g]) == 0 {
			continue
		}
		m.groups[g] = slices.DeleteFunc(m.groups[g], func(e *Entity) bool {
			return !e.active || !e.groups.test(uint(g))
		})
	}
	// Compact before retiring: Finalize hooks may create entities, and
	// those must land in the compacted slice.
	var dead []*Entity
	m.entities = slices.DeleteFunc(m.entities, func(e *Entity) bool {
		if e.active {
			return false
		}
		dead = append(dead, e)
		return true
	})
	for _, e := range dead {
		m.retire(e)
	}
}

// RemoveAll destroys every entity and refreshes.
func (m *Manager) RemoveAll() {
	for _, e := range m.entities {
		e.Destroy()
	}
	m.Refresh()
}

func (m *Manager) retire(e *Entity) {
	e.release()
	s := &m.slots[e.handle.index]
	s.entity = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	m.free = append(m.free, e.handle.index)
}

// UpdateAll updates the active entities in es.
func UpdateAll(es []*Entity) {
	for _, e := range es {
		if e.active {
			e.Update()
		}
	}
}

// Draw2DAll draws the active entities in es.
func Draw2DAll(es []*Entity) {
	for _, e := range es {
		if e.active {
			e.Draw2D()
		}
	}
}

// Draw3DAll draws the active entities in es.
func Draw3DAll(es []*Entity) {
	for _, e := range es {
		if e.active {
			e.Draw3D()
		}
	}
}
