package gui

import (
	"sync"

	"github.com/google/uuid"

	"github.com/koscakluka/mycroft-gui-go/gui/events"
	"github.com/koscakluka/mycroft-gui-go/gui/session"
	"github.com/koscakluka/mycroft-gui-go/gui/skills"
)

// SkillView is one presentation surface: a gui connection, the ordered
// active-skill list shown on it, the per-skill session data behind the
// delegates, and the delegate lifecycle.
//
// The gui connection follows the core connection: it (re)opens while a
// target is assigned and the core reports Open, and force-closes with
// its target and reconnect attempts cleared the moment either condition
// is lost.
type SkillView struct {
	id         string
	controller *Controller
	conn       *connection

	// mu serializes registry and session mutation across the gui read
	// loop and core status callbacks.
	mu        sync.Mutex
	registry  *skills.Registry
	skillData map[string]*session.Store

	options   ViewOptions
	emit      eventEmitter
	closeOnce sync.Once
}

// NewSkillView creates a surface and registers it with the controller.
func NewSkillView(controller *Controller, opts ...ViewOption) *SkillView {
	options := ViewOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	v := &SkillView{
		id:         uuid.NewString(),
		controller: controller,
		registry:   skills.NewRegistry(),
		skillData:  map[string]*session.Store{},
		options:    options,
		emit:       newViewEventEmitter(options),
	}
	v.conn = newConnection(v.onGuiMessage)
	v.conn.reachable = func() bool {
		return controller != nil && controller.Status() == Open
	}
	v.conn.subscribeStatus(func(status Status) {
		v.emit(events.NewStatusChanged(status.String()))
	})

	if controller != nil {
		controller.RegisterView(v)
	}
	return v
}

// ID returns the surface's unique identifier.
func (v *SkillView) ID() string {
	return v.id
}

// URL returns the gui socket target assigned to the surface.
func (v *SkillView) URL() string {
	return v.conn.Target()
}

// SetURL assigns the gui socket target. Assigning the current target
// again is a no-op; otherwise the surface redials immediately when the
// core connection is open, and waits for it to open when it is not.
func (v *SkillView) SetURL(url string) {
	if v.conn.Target() == url {
		return
	}

	wasOpen := v.Status() == Open
	v.conn.SetTarget(url)
	if !wasOpen && v.controller != nil && v.controller.Status() == Open {
		v.conn.open()
	}
}

// Status returns the computed state of the gui connection.
func (v *SkillView) Status() Status {
	return v.conn.Status()
}

// Skills returns the active skill ids in display order.
func (v *SkillView) Skills() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.registry.Skills()
}

// DelegateFor returns the delegate registered for (skillID, guiURL), if
// any.
func (v *SkillView) DelegateFor(skillID, guiURL string) skills.Delegate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.registry.DelegateFor(skillID, guiURL)
}

// SessionDataForSkill returns the session store of an active skill,
// creating it lazily on first access. Skills outside the active list
// have no session data and yield nil.
func (v *SkillView) SessionDataForSkill(skillID string) *session.Store {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessionDataLocked(skillID)
}

func (v *SkillView) sessionDataLocked(skillID string) *session.Store {
	if store, ok := v.skillData[skillID]; ok {
		return store
	}
	if !v.registry.Contains(skillID) {
		return nil
	}

	store := session.NewStore()
	store.Subscribe(func(change session.Change) {
		v.emit(events.NewSessionDataChanged(skillID, change.Key, change.Kind == session.ChangeDeleted))
	})
	v.skillData[skillID] = store
	return store
}

// Close shuts the gui connection down.
func (v *SkillView) Close() {
	v.closeOnce.Do(func() {
		v.conn.close()
	})
}

func (v *SkillView) coreStatusChanged(status Status) {
	if status == Open {
		if v.conn.Target() != "" {
			v.conn.closeSocket()
			v.conn.open()
		}
		return
	}

	// The core is gone; the gui channel address it handed out cannot be
	// assumed valid anymore.
	v.conn.close()
	v.conn.clearTarget()
}
