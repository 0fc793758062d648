package domain

// History is the back-stack of previously current scenes.
//
// SkipNext is armed by Back and consumed by the next Record call, so the
// scene change caused by going back is never pushed onto the stack again.
type History struct {
	Entries  []SceneID `json:"entries"`
	SkipNext bool      `json:"skip_next,omitempty"`
}

// Record registers an observed change away from previous.
// It returns false when the change was excluded by an armed skip flag.
func (h *History) Record(previous SceneID) bool {
	if h.SkipNext {
		h.SkipNext = false
		return false
	}
	h.Entries = append(h.Entries, previous)
	return true
}

// Prune drops entries rejected by valid. When that removed anything, it also
// strips trailing entries equal to current, since a deletion can expose the
// scene already shown at the top of the stack.
// A history with only valid entries is left as is, so a forward revisit of a
// scene keeps its earlier entries. It returns the number of entries removed.
func (h *History) Prune(valid func(SceneID) bool, current SceneID) int {
	kept := make([]SceneID, 0, len(h.Entries))
	for _, id := range h.Entries {
		if valid(id) {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(h.Entries) {
		return 0
	}

	for len(kept) > 0 && kept[len(kept)-1] == current {
		kept = kept[:len(kept)-1]
	}

	removed := len(h.Entries) - len(kept)
	h.Entries = kept
	return removed
}

// Back pops the trailing entry and arms the skip flag.
// It returns ErrEmptyHistory and leaves the history untouched when there is nothing to go back to.
func (h *History) Back() (SceneID, error) {
	n := len(h.Entries)
	if n == 0 {
		return 0, ErrEmptyHistory
	}
	last := h.Entries[n-1]
	h.Entries = h.Entries[:n-1]
	h.SkipNext = true
	return last, nil
}

// Top returns the scene Back would return.
func (h *History) Top() (SceneID, bool) {
	if len(h.Entries) == 0 {
		return 0, false
	}
	return h.Entries[len(h.Entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.Entries)
}

// Clone returns a deep copy.
func (h History) Clone() History {
	entries := make([]SceneID, len(h.Entries))
	copy(entries, h.Entries)
	return History{Entries: entries, SkipNext: h.SkipNext}
}
