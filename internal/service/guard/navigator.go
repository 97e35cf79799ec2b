package guard

import "sync"

// Navigator applies location corrections outside the resolve pass. Mutating
// the location while a view is being computed corrupts the host's render
// cycle, so redirects are staged with Request and applied with Commit after
// the pass completes. Only one pending navigation is honored per
// input-state transition; the pending flag resets when the location
// actually changes.
type Navigator struct {
	mu       sync.Mutex
	location string
	pending  string
	hasPend  bool
}

func NewNavigator(initial string) *Navigator {
	return &Navigator{location: normalize(initial)}
}

// Location returns the current location.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Request stages a navigation intent. A request made while one is already
// pending is dropped: the first intent of a transition wins.
func (n *Navigator) Request(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.hasPend {
		return
	}
	n.pending = normalize(target)
	n.hasPend = true
}

// Commit applies the pending navigation, if any. It reports the resulting
// location and whether it changed. The pending flag is cleared either way;
// a stale intent equal to the current location is simply discarded.
func (n *Navigator) Commit() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.hasPend {
		return n.location, false
	}
	n.hasPend = false
	if n.pending == n.location {
		return n.location, false
	}
	n.location = n.pending
	return n.location, true
}

// Set moves the location directly (user-initiated navigation) and clears
// any pending correction staged against the previous location.
func (n *Navigator) Set(location string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = normalize(location)
	n.hasPend = false
}
