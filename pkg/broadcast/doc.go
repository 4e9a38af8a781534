// Package broadcast provides a bounded, multi-reader ring buffer for fanning a
// single message stream out to many independently paced subscribers.
//
// The buffer has exactly one write position (head) and one read cursor per
// subscriber. A slot stays alive until every registered cursor has moved past
// it; the lowest cursor (the oldest tail) decides what can be reclaimed.
//
// # Architecture
//
// The package defines four types:
//   - Slot: one immutable buffered message
//   - Cursor: a subscriber's read position plus its connection handle
//   - Registry: the unordered set of live cursors
//   - Ring: fixed-capacity storage that owns slot lifetime
//
// # Usage
//
//	ring := broadcast.NewRing[*Session](8)
//	defer ring.Close()
//
//	cur := broadcast.NewCursor(ring.OldestTail(), sess)
//	ring.Attach(cur)
//
//	if !ring.Insert([]byte("hello")) {
//		// buffer full: the message is dropped
//	}
//
//	for {
//		slot, ok := ring.Peek(cur)
//		if !ok {
//			break
//		}
//		send(slot.Payload())
//		ring.ConsumeAndAdvance(cur)
//	}
//
//	ring.Detach(cur)
//
// # Positions
//
// Head and tails are free-running uint64 counters. They are reduced modulo
// the capacity only when indexing the slot array, so head - tail is always
// the number of unread messages for a cursor and wraparound never needs
// special casing.
//
// # Slow Consumer Handling
//
// When the slowest cursor is capacity messages behind head, Insert reports
// false and the new message is dropped. Memory never grows past capacity
// slots; a lagging subscriber causes drops, not retention growth.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Callers serialize all
// access, typically from a single event loop goroutine.
package broadcast
