package renderer

// arenaSlot is one entry in a handle arena.
type arenaSlot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// arena is a generational slot allocator for texture and pipeline records.
// Handles carry the slot index and the generation it was issued for; a handle
// whose generation no longer matches the slot is stale and resolves to
// nothing, even if the slot has been reused.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
}

// insert stores a value and returns its slot index and generation.
func (a *arena[T]) insert(v T) (index, generation uint32) {
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[index]
		slot.value = v
		slot.live = true
		return index, slot.generation
	}
	index = uint32(len(a.slots))
	a.slots = append(a.slots, arenaSlot[T]{value: v, live: true})
	return index, 0
}

// get resolves a handle. Returns false for stale or out-of-range handles.
func (a *arena[T]) get(index, generation uint32) (T, bool) {
	if int(index) >= len(a.slots) {
		var zero T
		return zero, false
	}
	slot := &a.slots[index]
	if !slot.live || slot.generation != generation {
		var zero T
		return zero, false
	}
	return slot.value, true
}

// replace swaps the value at a live slot without bumping the generation, so
// existing handles stay valid. Returns false for stale handles.
func (a *arena[T]) replace(index, generation uint32, v T) bool {
	if int(index) >= len(a.slots) {
		return false
	}
	slot := &a.slots[index]
	if !slot.live || slot.generation != generation {
		return false
	}
	slot.value = v
	return true
}

// remove frees a slot and bumps its generation so outstanding handles go
// stale. Returns the removed value.
func (a *arena[T]) remove(index, generation uint32) (T, bool) {
	var zero T
	if int(index) >= len(a.slots) {
		return zero, false
	}
	slot := &a.slots[index]
	if !slot.live || slot.generation != generation {
		return zero, false
	}
	v := slot.value
	slot.value = zero
	slot.live = false
	slot.generation++
	a.free = append(a.free, index)
	return v, true
}

// each calls fn for every live value.
func (a *arena[T]) each(fn func(v T)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(a.slots[i].value)
		}
	}
}

// clear drops every live value after passing it to fn, bumping generations.
func (a *arena[T]) clear(fn func(v T)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(a.slots[i].value)
			var zero T
			a.slots[i].value = zero
			a.slots[i].live = false
			a.slots[i].generation++
			a.free = append(a.free, uint32(i))
		}
	}
}
