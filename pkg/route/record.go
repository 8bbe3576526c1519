package route

import (
	"maps"
	"sort"
	"sync"
)

// DefaultSlot is the slot name used for single-view routes.
const DefaultSlot = "default"

// RecordConfig describes a record at construction time.
type RecordConfig struct {
	Path        string
	Name        string
	Components  map[string]*Component
	Meta        map[string]any
	Props       map[string]any
	BeforeEnter Guard
}

// Record is a compiled route definition node. Records are owned by the
// matcher; routes only reference them. Parent is a non-owning back
// reference used to rebuild root-to-leaf chains.
//
// Components, instances and entered callbacks may change after
// construction (async resolution, rendering) and are guarded by mu.
type Record struct {
	Path        string
	Name        string
	Parent      *Record
	Meta        map[string]any
	Props       map[string]any
	BeforeEnter Guard

	mu         sync.Mutex
	components map[string]*Component
	instances  map[string]any
	enteredCbs map[string][]EnteredFunc
}

// NewRecord creates a record under parent (nil for top-level routes).
func NewRecord(cfg RecordConfig, parent *Record) *Record {
	return &Record{
		Path:        cfg.Path,
		Name:        cfg.Name,
		Parent:      parent,
		Meta:        cfg.Meta,
		Props:       cfg.Props,
		BeforeEnter: cfg.BeforeEnter,
		components:  maps.Clone(cfg.Components),
		instances:   map[string]any{},
		enteredCbs:  map[string][]EnteredFunc{},
	}
}

// Chain walks parent links and returns the root-to-leaf sequence ending
// at r. A nil record yields an empty chain.
func (r *Record) Chain() []*Record {
	var chain []*Record
	for rec := r; rec != nil; rec = rec.Parent {
		chain = append(chain, rec)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	if chain == nil {
		chain = []*Record{}
	}
	return chain
}

// Slots lists the record's component slots, default slot first.
func (r *Record) Slots() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := make([]string, 0, len(r.components))
	for slot := range r.components {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i] == DefaultSlot || slots[j] == DefaultSlot {
			return slots[i] == DefaultSlot
		}
		return slots[i] < slots[j]
	})
	return slots
}

func (r *Record) Component(slot string) *Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.components[slot]
}

// SetComponent swaps the definition in slot; used once a lazy component
// has been loaded.
func (r *Record) SetComponent(slot string, c *Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.components == nil {
		r.components = map[string]*Component{}
	}
	r.components[slot] = c
}

func (r *Record) Instance(slot string) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instances[slot]
}

// SetInstance registers the live instance rendered for slot.
func (r *Record) SetInstance(slot string, instance any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.instances == nil {
		r.instances = map[string]any{}
	}
	r.instances[slot] = instance
}

// UnsetInstance removes the slot instance only if it is still instance.
// It reports whether anything was removed.
func (r *Record) UnsetInstance(slot string, instance any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.instances[slot]; !ok || cur != instance {
		return false
	}
	delete(r.instances, slot)
	return true
}

// AddEnteredCallback queues cb until an instance for slot is available.
func (r *Record) AddEnteredCallback(slot string, cb EnteredFunc) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enteredCbs == nil {
		r.enteredCbs = map[string][]EnteredFunc{}
	}
	r.enteredCbs[slot] = append(r.enteredCbs[slot], cb)
}

// PendingEntered reports how many callbacks wait for slot.
func (r *Record) PendingEntered(slot string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.enteredCbs[slot])
}

// takeEntered removes and returns the callbacks for every slot that has a
// live instance, keyed by that instance.
func (r *Record) takeEntered() []enteredBatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	var batches []enteredBatch
	for slot, instance := range r.instances {
		cbs := r.enteredCbs[slot]
		if instance == nil || len(cbs) == 0 {
			continue
		}
		delete(r.enteredCbs, slot)
		batches = append(batches, enteredBatch{instance: instance, cbs: cbs})
	}
	return batches
}

type enteredBatch struct {
	instance any
	cbs      []EnteredFunc
}

// HandleEntered delivers queued enter-guard callbacks to the instances
// registered on the route's matched records. Callbacks for slots without
// an instance stay queued.
func HandleEntered(r *Route) {
	if r == nil {
		return
	}
	for _, rec := range r.matched {
		for _, batch := range rec.takeEntered() {
			for _, cb := range batch.cbs {
				cb(batch.instance)
			}
		}
	}
}
