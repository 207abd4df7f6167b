package naming

import "sync"

// ClaimTracker records which input file produced each output path during a
// run. Two inputs that differ only by extension (a.avi, a.mov) rebase onto
// the same output; the tracker lets the caller notice instead of silently
// skipping or clobbering. All methods are goroutine-safe.
type ClaimTracker struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that owns it
}

// NewClaimTracker creates a ready-to-use tracker.
func NewClaimTracker() *ClaimTracker {
	return &ClaimTracker{owners: make(map[string]string)}
}

// Claim records input as the source of output. If a different input already
// claimed output, Claim leaves the record unchanged and returns that owner
// with ok=false.
func (ct *ClaimTracker) Claim(input, output string) (owner string, ok bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	if prev, exists := ct.owners[output]; exists && prev != input {
		return prev, false
	}
	ct.owners[output] = input
	return input, true
}

// Len returns the number of claimed outputs.
func (ct *ClaimTracker) Len() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.owners)
}
