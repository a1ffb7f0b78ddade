package galaxy

// Wormhole is a zero-fuel passage connecting an ordered cycle of systems.
// Entering at stop i leads to stop i+1; the last stop leads back to the first,
// so a two-stop wormhole behaves as a bidirectional link.
type Wormhole struct {
	symbol       string
	accessModule string
	stops        []*System
}

// Symbol returns the wormhole identifier
func (w *Wormhole) Symbol() string {
	return w.symbol
}

// AccessModule names the ship module needed to traverse the wormhole.
// Empty means any ship may use it.
func (w *Wormhole) AccessModule() string {
	return w.accessModule
}

// IsRestricted reports whether traversal requires a specific module
func (w *Wormhole) IsRestricted() bool {
	return w.accessModule != ""
}

// Stops returns the systems of the cycle in order
func (w *Wormhole) Stops() []*System {
	return w.stops
}

// Destination returns where entering the wormhole from the given system leads,
// or nil if the wormhole has no stop there.
func (w *Wormhole) Destination(from *System) *System {
	for i, stop := range w.stops {
		if stop == from {
			return w.stops[(i+1)%len(w.stops)]
		}
	}
	return nil
}
