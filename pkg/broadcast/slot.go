package broadcast

// Slot holds one buffered message. The payload is never modified after the
// slot is created; callers must treat the slice returned by Payload as
// read-only.
type Slot struct {
	payload []byte
}

// newSlot copies p so the caller can reuse its buffer.
func newSlot(p []byte) *Slot {
	buf := make([]byte, len(p))
	copy(buf, p)
	return &Slot{payload: buf}
}

// Payload returns the message bytes.
func (s *Slot) Payload() []byte {
	return s.payload
}

// Len returns the payload length.
func (s *Slot) Len() int {
	return len(s.payload)
}

// release drops the payload so the storage can be collected even while a
// stale pointer to the slot is still held somewhere.
func (s *Slot) release() {
	s.payload = nil
}
