package broadcast

// DefaultCapacity is the number of slots used when NewRing gets a
// non-positive capacity.
const DefaultCapacity = 8

// Ring is a fixed-capacity circular buffer with one writer and many cursors.
//
// Invariants:
//   - oldest <= cursor.tail <= head for every attached cursor
//   - head - oldest <= capacity
//   - slots in [oldest, head) are live, everything else is released
type Ring[C any] struct {
	slots   []*Slot
	size    uint64
	head    uint64
	oldest  uint64
	cursors *Registry[C]
	closed  bool
}

// NewRing allocates a ring with the given number of slots.
func NewRing[C any](capacity int) *Ring[C] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring[C]{
		slots:   make([]*Slot, capacity),
		size:    uint64(capacity),
		cursors: NewRegistry[C](),
	}
}

// Insert copies payload into a new slot at head. It returns false and leaves
// the ring untouched when every slot is still referenced by some cursor, or
// after Close.
func (r *Ring[C]) Insert(payload []byte) bool {
	if r.closed || r.Free() == 0 {
		return false
	}
	r.slots[r.head%r.size] = newSlot(payload)
	r.head++
	if r.cursors.Len() == 0 {
		// Nobody can read it; oldest follows head.
		r.reclaim()
	}
	return true
}

// OldestTail is where a subscriber joining now starts reading.
func (r *Ring[C]) OldestTail() uint64 {
	return r.oldest
}

// Head returns the position the next inserted slot will take.
func (r *Ring[C]) Head() uint64 {
	return r.head
}

// Peek returns the slot at the cursor's tail if one is pending.
func (r *Ring[C]) Peek(c *Cursor[C]) (*Slot, bool) {
	if c.tail < r.oldest || c.tail >= r.head {
		return nil, false
	}
	s := r.slots[c.tail%r.size]
	if s == nil {
		return nil, false
	}
	return s, true
}

// Pending returns how many slots the cursor has not consumed yet.
func (r *Ring[C]) Pending(c *Cursor[C]) int {
	if c.tail < r.oldest || c.tail >= r.head {
		return 0
	}
	return int(r.head - c.tail)
}

// ConsumeAndAdvance moves the cursor past its current slot and releases every
// slot no attached cursor can still read. Calling it with nothing pending is a
// no-op.
func (r *Ring[C]) ConsumeAndAdvance(c *Cursor[C]) {
	if c.tail >= r.head {
		return
	}
	c.tail++
	r.reclaim()
}

// Attach registers c. A tail outside [OldestTail, Head] is clamped into that
// range. Attaching the same cursor twice is a no-op.
func (r *Ring[C]) Attach(c *Cursor[C]) {
	if r.cursors.Contains(c) {
		return
	}
	if c.tail < r.oldest {
		c.tail = r.oldest
	}
	if c.tail > r.head {
		c.tail = r.head
	}
	r.cursors.Add(c)
}

// Detach unregisters c and reclaims the slots only it was holding.
func (r *Ring[C]) Detach(c *Cursor[C]) bool {
	if !r.cursors.Remove(c) {
		return false
	}
	r.reclaim()
	return true
}

// Cursors exposes the registry for fan-out. Mutate it only through Attach
// and Detach.
func (r *Ring[C]) Cursors() *Registry[C] {
	return r.cursors
}

// Cap returns the number of slots.
func (r *Ring[C]) Cap() int {
	return int(r.size)
}

// Len returns the number of live slots.
func (r *Ring[C]) Len() int {
	return int(r.head - r.oldest)
}

// Free returns the number of slots available to Insert.
func (r *Ring[C]) Free() int {
	return int(r.size - (r.head - r.oldest))
}

// Close releases every live slot. Insert fails afterwards; cursors see
// nothing pending.
func (r *Ring[C]) Close() {
	if r.closed {
		return
	}
	r.release(r.oldest, r.head)
	r.oldest = r.head
	r.closed = true
}

func (r *Ring[C]) reclaim() {
	low := r.cursors.MinTail(r.head)
	if low <= r.oldest {
		return
	}
	r.release(r.oldest, low)
	r.oldest = low
}

func (r *Ring[C]) release(from, to uint64) {
	for pos := from; pos < to; pos++ {
		i := pos % r.size
		if s := r.slots[i]; s != nil {
			s.release()
			r.slots[i] = nil
		}
	}
}
