// Package variety remembers which foods a plan has already served so that
// composition can steer away from repetition.
//
// A Tracker is single-goroutine by contract. Concurrent day generation works
// on forked copies that are merged back afterward; Merge is commutative, so
// the merged state does not depend on goroutine scheduling.
package variety

import (
	"sort"
)

// RepetitionPenalty is the variety-distance surcharge for a food that the
// plan has already served.
const RepetitionPenalty = 0.8

// Reader provides read-only access to recent-usage state. Scoring code holds
// this interface.
type Reader interface {
	// Penalty returns the repetition surcharge for a food: 0 when unseen,
	// RepetitionPenalty once recorded.
	Penalty(id string) float64

	// Seen reports whether the food has been recorded since the last reset.
	Seen(id string) bool

	// Picks returns the high-water mark of recorded picks.
	Picks() int
}

// Recorder provides write access to recent-usage state. Composition code
// holds this interface.
type Recorder interface {
	// Record marks a food as served.
	Record(id string)

	// Reset forgets all recorded foods.
	Reset()
}

// ReadRecorder combines both sides of the tracker.
type ReadRecorder interface {
	Reader
	Recorder
}

// Tracker is the canonical ReadRecorder implementation.
type Tracker struct {
	recency map[string]int
	picks   int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{recency: make(map[string]int)}
}

// Record marks a food as served, stamping it with the current pick ordinal.
func (t *Tracker) Record(id string) {
	if id == "" {
		return
	}
	t.picks++
	t.recency[id] = t.picks
}

// Seen reports whether the food has been recorded since the last reset.
func (t *Tracker) Seen(id string) bool {
	_, ok := t.recency[id]
	return ok
}

// Penalty returns 0 for unseen foods and RepetitionPenalty for recorded ones.
func (t *Tracker) Penalty(id string) float64 {
	if t.Seen(id) {
		return RepetitionPenalty
	}
	return 0
}

// Picks returns the high-water mark of recorded picks. It survives Reset so
// that recency stamps stay monotonic across the life of the tracker.
func (t *Tracker) Picks() int {
	return t.picks
}

// Distinct returns the number of distinct foods recorded since the last reset.
func (t *Tracker) Distinct() int {
	return len(t.recency)
}

// Reset forgets all recorded foods.
func (t *Tracker) Reset() {
	t.recency = make(map[string]int)
}

// Fork returns an independent copy sharing no state with the receiver.
func (t *Tracker) Fork() *Tracker {
	copied := &Tracker{
		recency: make(map[string]int, len(t.recency)),
		picks:   t.picks,
	}
	for id, stamp := range t.recency {
		copied.recency[id] = stamp
	}
	return copied
}

// Merge folds another tracker into the receiver, keeping the most recent
// stamp per food. Merging the same set of forks in any order yields the same
// state.
func (t *Tracker) Merge(other *Tracker) {
	if other == nil {
		return
	}
	for id, stamp := range other.recency {
		if stamp > t.recency[id] {
			t.recency[id] = stamp
		}
	}
	if other.picks > t.picks {
		t.picks = other.picks
	}
}

// SeenIDs returns the recorded food IDs in a stable order.
func (t *Tracker) SeenIDs() []string {
	ids := make([]string, 0, len(t.recency))
	for id := range t.recency {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
