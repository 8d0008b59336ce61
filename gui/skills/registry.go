// Package skills keeps the ordered list of active skills and the UI
// delegates bound to them.
package skills

import "fmt"

// Entry is one active skill and its bound delegates. Registry order is
// the authoritative display order.
type Entry struct {
	skillID   string
	delegates []Delegate
}

// SkillID returns the entry's skill identifier.
func (e *Entry) SkillID() string { return e.skillID }

// Delegates returns the delegates bound to the entry, in binding order.
func (e *Entry) Delegates() []Delegate {
	delegates := make([]Delegate, len(e.delegates))
	copy(delegates, e.delegates)
	return delegates
}

// Registry is the ordered, uniquely-keyed collection of active skills.
// Positions are 0-based and contiguous; every positional argument is
// validated against the current length before any mutation, so a
// rejected operation leaves the registry untouched.
type Registry struct {
	entries []*Entry
	// system holds delegates not bound to any specific skill; they are
	// the targets of system-namespace triggered events.
	system []Delegate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of active skills.
func (r *Registry) Len() int { return len(r.entries) }

// SkillAt returns the skill id at position i.
func (r *Registry) SkillAt(i int) (string, bool) {
	if i < 0 || i >= len(r.entries) {
		return "", false
	}
	return r.entries[i].skillID, true
}

// Skills returns the active skill ids in display order.
func (r *Registry) Skills() []string {
	skills := make([]string, len(r.entries))
	for i, entry := range r.entries {
		skills[i] = entry.skillID
	}
	return skills
}

// Contains reports whether a skill is active.
func (r *Registry) Contains(skillID string) bool {
	return r.indexOf(skillID) >= 0
}

// Insert activates a contiguous block of skills at position, preserving
// the block's relative order. Ids already active or repeated within the
// block violate registry uniqueness and reject the whole operation.
func (r *Registry) Insert(position int, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return fmt.Errorf("no skills to insert")
	}
	if position < 0 || position > len(r.entries) {
		return fmt.Errorf("insert position %d out of range for %d active skills", position, len(r.entries))
	}
	seen := map[string]bool{}
	for _, skillID := range skillIDs {
		if r.Contains(skillID) || seen[skillID] {
			return fmt.Errorf("skill %q is already active", skillID)
		}
		seen[skillID] = true
	}

	block := make([]*Entry, len(skillIDs))
	for i, skillID := range skillIDs {
		block[i] = &Entry{skillID: skillID}
	}
	r.entries = append(r.entries[:position], append(block, r.entries[position:]...)...)
	return nil
}

// Remove deactivates the contiguous block [position, position+count) and
// returns the removed entries so the caller can destroy their delegates
// and session data.
func (r *Registry) Remove(position, count int) ([]*Entry, error) {
	if position < 0 || position >= len(r.entries) {
		return nil, fmt.Errorf("remove position %d out of range for %d active skills", position, len(r.entries))
	}
	if count < 1 || position+count > len(r.entries) {
		return nil, fmt.Errorf("cannot remove %d skills at position %d from %d active skills", count, position, len(r.entries))
	}

	removed := make([]*Entry, count)
	copy(removed, r.entries[position:position+count])
	r.entries = append(r.entries[:position], r.entries[position+count:]...)
	return removed, nil
}

// Move relocates the contiguous block [from, from+count) so it starts at
// the position the block occupied by `to` had before the move. A move
// onto itself is a no-op; a destination inside the moved block is
// rejected. No delegate or session data is touched.
func (r *Registry) Move(from, to, count int) error {
	length := len(r.entries)
	if from < 0 || from >= length {
		return fmt.Errorf("move source %d out of range for %d active skills", from, length)
	}
	if to < 0 || to >= length {
		return fmt.Errorf("move destination %d out of range for %d active skills", to, length)
	}
	if count < 1 || from+count > length {
		return fmt.Errorf("cannot move %d skills from position %d of %d active skills", count, from, length)
	}
	if from == to {
		return nil
	}
	if to > from && to < from+count {
		return fmt.Errorf("move destination %d is inside the moved block [%d, %d)", to, from, from+count)
	}

	block := make([]*Entry, count)
	copy(block, r.entries[from:from+count])
	remaining := append(r.entries[:from], r.entries[from+count:]...)

	destination := to
	if to > from {
		destination = to - count
	}
	r.entries = append(remaining[:destination], append(block, remaining[destination:]...)...)
	return nil
}

// InsertDelegate registers a delegate under its skill. Delegates without
// a skill id join the system broadcast list. The skill must be active.
func (r *Registry) InsertDelegate(delegate Delegate) error {
	if delegate == nil {
		return fmt.Errorf("nil delegate")
	}
	if delegate.SkillID() == "" {
		r.system = append(r.system, delegate)
		return nil
	}

	index := r.indexOf(delegate.SkillID())
	if index < 0 {
		return fmt.Errorf("skill %q is not active", delegate.SkillID())
	}
	r.entries[index].delegates = append(r.entries[index].delegates, delegate)
	return nil
}

// DelegateFor returns the delegate registered for (skillID, guiURL), if
// any. Lookup is what makes gui.show idempotent.
func (r *Registry) DelegateFor(skillID, guiURL string) Delegate {
	index := r.indexOf(skillID)
	if index < 0 {
		return nil
	}
	for _, delegate := range r.entries[index].delegates {
		if delegate.GuiURL() == guiURL {
			return delegate
		}
	}
	return nil
}

// DelegatesFor returns the delegates bound to a skill, or the system
// broadcast list when skillID is empty.
func (r *Registry) DelegatesFor(skillID string) []Delegate {
	if skillID == "" {
		delegates := make([]Delegate, len(r.system))
		copy(delegates, r.system)
		return delegates
	}

	index := r.indexOf(skillID)
	if index < 0 {
		return nil
	}
	return r.entries[index].Delegates()
}

func (r *Registry) indexOf(skillID string) int {
	for i, entry := range r.entries {
		if entry.skillID == skillID {
			return i
		}
	}
	return -1
}
