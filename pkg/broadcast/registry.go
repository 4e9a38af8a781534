package broadcast

// Cursor is a subscriber's read position in a Ring.
type Cursor[C any] struct {
	tail uint64
	conn C
	next *Cursor[C]
}

// NewCursor creates a cursor that will read the slot at tail next.
// Use Ring.OldestTail for a subscriber that is joining now.
func NewCursor[C any](tail uint64, conn C) *Cursor[C] {
	return &Cursor[C]{tail: tail, conn: conn}
}

// Tail returns the position of the next unread slot.
func (c *Cursor[C]) Tail() uint64 {
	return c.tail
}

// Conn returns the connection handle the cursor was created with.
func (c *Cursor[C]) Conn() C {
	return c.conn
}

// Registry is the set of live cursors. Cursors are kept in a singly linked
// list: Add is O(1), Remove is a linear scan.
type Registry[C any] struct {
	head *Cursor[C]
	size int
}

// NewRegistry returns an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{}
}

// Add inserts c at the front. Adding a cursor that is already registered
// corrupts the list; the Ring guards against it.
func (r *Registry[C]) Add(c *Cursor[C]) {
	c.next = r.head
	r.head = c
	r.size++
}

// Remove unlinks c by identity and reports whether it was present.
func (r *Registry[C]) Remove(c *Cursor[C]) bool {
	for pp := &r.head; *pp != nil; pp = &(*pp).next {
		if *pp == c {
			*pp = c.next
			c.next = nil
			r.size--
			return true
		}
	}
	return false
}

// Contains reports whether c is registered.
func (r *Registry[C]) Contains(c *Cursor[C]) bool {
	for cur := r.head; cur != nil; cur = cur.next {
		if cur == c {
			return true
		}
	}
	return false
}

// ForEach calls fn for every registered cursor until fn returns false.
// Iteration order is unspecified. fn must not add or remove cursors.
func (r *Registry[C]) ForEach(fn func(*Cursor[C]) bool) {
	for cur := r.head; cur != nil; cur = cur.next {
		if !fn(cur) {
			return
		}
	}
}

// Len returns the number of registered cursors.
func (r *Registry[C]) Len() int {
	return r.size
}

// MinTail returns the lowest tail among registered cursors, or fallback when
// the registry is empty.
func (r *Registry[C]) MinTail(fallback uint64) uint64 {
	if r.head == nil {
		return fallback
	}
	low := r.head.tail
	for cur := r.head.next; cur != nil; cur = cur.next {
		if cur.tail < low {
			low = cur.tail
		}
	}
	return low
}
