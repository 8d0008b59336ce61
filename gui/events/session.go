package events

const (
	// KindSessionDataChanged identifies per-skill session store writes and
	// deletes.
	KindSessionDataChanged Kind = "session.data_changed"
	// KindDelegateRequested identifies server requests to surface a
	// delegate.
	KindDelegateRequested Kind = "gui.delegate_requested"
)

// SessionDataChanged carries the skill and property whose session value
// was written or deleted. Deleted is false for inserts and updates.
type SessionDataChanged struct {
	Base
	SkillID  string
	Property string
	Deleted  bool
}

// NewSessionDataChanged creates a session data change event.
func NewSessionDataChanged(skillID, property string, deleted bool) SessionDataChanged {
	return SessionDataChanged{Base: NewBase(KindSessionDataChanged), SkillID: skillID, Property: property, Deleted: deleted}
}

// DelegateRequested carries the delegate key the server asked to surface.
type DelegateRequested struct {
	Base
	SkillID string
	GuiURL  string
}

// NewDelegateRequested creates a delegate requested event.
func NewDelegateRequested(skillID, guiURL string) DelegateRequested {
	return DelegateRequested{Base: NewBase(KindDelegateRequested), SkillID: skillID, GuiURL: guiURL}
}
