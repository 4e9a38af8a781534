package broker

// Stats is a point-in-time view of the dispatcher.
type Stats struct {
	Subscribers int `json:"subscribers"`
	Publishers  int `json:"publishers"`

	Capacity int    `json:"capacity"`
	Buffered int    `json:"buffered"`
	Free     int    `json:"free"`
	Head     uint64 `json:"head"`
	Oldest   uint64 `json:"oldest_tail"`

	Published uint64 `json:"published"`
	Delivered uint64 `json:"delivered"`
	Dropped   uint64 `json:"dropped"`
	Ignored   uint64 `json:"ignored"`
}

// Stats reports counters and ring occupancy. Like every other method it must
// run on the dispatcher's goroutine.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Subscribers: d.ring.Cursors().Len(),
		Publishers:  d.publishers,
		Capacity:    d.ring.Cap(),
		Buffered:    d.ring.Len(),
		Free:        d.ring.Free(),
		Head:        d.ring.Head(),
		Oldest:      d.ring.OldestTail(),
		Published:   d.published,
		Delivered:   d.delivered,
		Dropped:     d.dropped,
		Ignored:     d.ignored,
	}
}
