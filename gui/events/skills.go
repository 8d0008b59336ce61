package events

const (
	// KindSkillsInserted identifies applied active-skill insertions.
	KindSkillsInserted Kind = "skills.inserted"
	// KindSkillsRemoved identifies applied active-skill removals.
	KindSkillsRemoved Kind = "skills.removed"
	// KindSkillsMoved identifies applied active-skill relocations.
	KindSkillsMoved Kind = "skills.moved"
)

// SkillsInserted carries a contiguous block of skill ids that became
// active at Position, in display order.
type SkillsInserted struct {
	Base
	Position int
	SkillIDs []string
}

// NewSkillsInserted creates an active-skill insertion event.
func NewSkillsInserted(position int, skillIDs []string) SkillsInserted {
	return SkillsInserted{Base: NewBase(KindSkillsInserted), Position: position, SkillIDs: skillIDs}
}

// SkillsRemoved carries a contiguous block of skill ids that was
// deactivated starting at Position. Session data and delegates of the
// named skills are already destroyed when the event is observed.
type SkillsRemoved struct {
	Base
	Position int
	SkillIDs []string
}

// NewSkillsRemoved creates an active-skill removal event.
func NewSkillsRemoved(position int, skillIDs []string) SkillsRemoved {
	return SkillsRemoved{Base: NewBase(KindSkillsRemoved), Position: position, SkillIDs: skillIDs}
}

// SkillsMoved carries an applied block relocation.
type SkillsMoved struct {
	Base
	From        int
	To          int
	ItemsNumber int
}

// NewSkillsMoved creates an active-skill relocation event.
func NewSkillsMoved(from, to, itemsNumber int) SkillsMoved {
	return SkillsMoved{Base: NewBase(KindSkillsMoved), From: from, To: to, ItemsNumber: itemsNumber}
}
