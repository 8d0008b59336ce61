package skills

import "github.com/koscakluka/mycroft-gui-go/gui/session"

// Delegate is one skill's UI-bindable presentation unit, keyed by
// (skill id, gui URL). The protocol core only drives the lifecycle and
// notifications; rendering is the implementer's concern.
type Delegate interface {
	SkillID() string
	SetSkillID(skillID string)
	GuiURL() string
	SetGuiURL(guiURL string)
	SessionData() *session.Store
	SetSessionData(data *session.Store)
	// CurrentRequested fires every time the server asks this delegate to
	// become the surface's current one, including right after creation.
	CurrentRequested()
	// TriggerEvent delivers a server-triggered event to the delegate.
	TriggerEvent(name string, data map[string]any)
}

// DelegateFactory instantiates the rendering layer's delegate for a gui
// URL. A failure is reported by the caller and leaves no state behind.
type DelegateFactory func(guiURL string) (Delegate, error)

// DelegateBase carries the bookkeeping half of a Delegate so rendering
// implementations only add behavior. The hooks, when set, receive the
// protocol notifications.
type DelegateBase struct {
	skillID string
	guiURL  string
	data    *session.Store

	OnCurrentRequested func()
	OnEvent            func(name string, data map[string]any)
}

func (d *DelegateBase) SkillID() string { return d.skillID }

func (d *DelegateBase) SetSkillID(skillID string) { d.skillID = skillID }

func (d *DelegateBase) GuiURL() string { return d.guiURL }

func (d *DelegateBase) SetGuiURL(guiURL string) { d.guiURL = guiURL }

func (d *DelegateBase) SessionData() *session.Store { return d.data }

func (d *DelegateBase) SetSessionData(data *session.Store) { d.data = data }

func (d *DelegateBase) CurrentRequested() {
	if d.OnCurrentRequested != nil {
		d.OnCurrentRequested()
	}
}

func (d *DelegateBase) TriggerEvent(name string, data map[string]any) {
	if d.OnEvent != nil {
		d.OnEvent(name, data)
	}
}
