package gui

import (
	"sort"

	"github.com/koscakluka/mycroft-gui-go/gui/events"
	"github.com/koscakluka/mycroft-gui-go/gui/protocol"
	"github.com/koscakluka/mycroft-gui-go/gui/skills"
)

// onGuiMessage decodes and dispatches one gui frame. Frames of one
// connection arrive from a single read loop, so dispatch sees them in
// arrival order, one at a time.
func (v *SkillView) onGuiMessage(raw []byte) {
	frame, err := protocol.Decode(raw)
	if err != nil {
		logger.Warn("discarding malformed gui frame", "view", v.id, "error", err)
		return
	}
	v.dispatch(frame)
}

// dispatch routes one decoded frame. Every branch validates its required
// fields before mutating state; a failed validation is reported and the
// frame is a complete no-op. Unknown types are ignored.
func (v *SkillView) dispatch(frame protocol.Frame) {
	switch frame.Type {
	case protocol.TypeSessionSet:
		v.applySessionSet(frame)
	case protocol.TypeSessionDelete:
		v.applySessionDelete(frame)
	case protocol.TypeGuiShow:
		v.applyGuiShow(frame)
	case protocol.TypeSessionInsert:
		if frame.Namespace == protocol.ActiveSkillsNamespace {
			v.applySkillsInsert(frame)
		}
	case protocol.TypeSessionRemove:
		if frame.Namespace == protocol.ActiveSkillsNamespace {
			v.applySkillsRemove(frame)
		}
	case protocol.TypeSessionMove:
		v.applySkillsMove(frame)
	case protocol.TypeEventsTriggered:
		v.applyEventsTriggered(frame)
	}
}

func (v *SkillView) applySessionSet(frame protocol.Frame) {
	if frame.Namespace == "" {
		logger.Warn("session set without a namespace", "view", v.id)
		return
	}
	data, err := frame.DataMap()
	if err != nil {
		logger.Warn("session set with malformed data", "view", v.id, "skill", frame.Namespace, "error", err)
		return
	}
	if len(data) == 0 {
		logger.Warn("session set without data", "view", v.id, "skill", frame.Namespace)
		return
	}

	v.mu.Lock()
	store := v.sessionDataLocked(frame.Namespace)
	v.mu.Unlock()
	if store == nil {
		logger.Warn("session set for an inactive skill", "view", v.id, "skill", frame.Namespace)
		return
	}

	// Deterministic key order keeps observer notification reproducible.
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := data[key]
		records, mismatch := protocol.RecordList(value)
		if mismatch {
			logger.Warn("session model records with mismatched field sets",
				"view", v.id, "skill", frame.Namespace, "property", key)
		}
		if len(records) > 0 {
			if _, err := store.SetRecords(key, records); err != nil {
				logger.Warn("failed to store session model", "view", v.id,
					"skill", frame.Namespace, "property", key, "error", err)
			}
			continue
		}
		if list, ok := value.([]any); ok && len(list) > 0 {
			logger.Warn("corrupted record list stored as a scalar",
				"view", v.id, "skill", frame.Namespace, "property", key)
		}
		store.SetScalar(key, value)
	}
}

func (v *SkillView) applySessionDelete(frame protocol.Frame) {
	if frame.Namespace == "" {
		logger.Warn("session delete without a namespace", "view", v.id)
		return
	}
	if frame.Property == "" {
		logger.Warn("session delete without a property", "view", v.id, "skill", frame.Namespace)
		return
	}

	v.mu.Lock()
	store := v.sessionDataLocked(frame.Namespace)
	v.mu.Unlock()
	if store == nil {
		logger.Warn("session delete for an inactive skill", "view", v.id, "skill", frame.Namespace)
		return
	}

	store.Delete(frame.Property)
}

func (v *SkillView) applyGuiShow(frame protocol.Frame) {
	if frame.Namespace == "" {
		logger.Warn("gui show without a namespace", "view", v.id)
		return
	}
	if frame.GuiURL == "" {
		logger.Warn("gui show without a gui url", "view", v.id, "skill", frame.Namespace)
		return
	}

	v.mu.Lock()
	delegate := v.registry.DelegateFor(frame.Namespace, frame.GuiURL)
	v.mu.Unlock()
	if delegate != nil {
		delegate.CurrentRequested()
		v.emit(events.NewDelegateRequested(frame.Namespace, frame.GuiURL))
		return
	}

	if v.options.factory == nil {
		logger.Warn("gui show without a delegate factory", "view", v.id,
			"skill", frame.Namespace, "gui_url", frame.GuiURL)
		return
	}
	delegate, err := v.options.factory(frame.GuiURL)
	if err != nil || delegate == nil {
		logger.Warn("failed to instantiate delegate", "view", v.id,
			"skill", frame.Namespace, "gui_url", frame.GuiURL, "error", err)
		return
	}

	delegate.SetSkillID(frame.Namespace)
	delegate.SetGuiURL(frame.GuiURL)

	v.mu.Lock()
	delegate.SetSessionData(v.sessionDataLocked(frame.Namespace))
	if err := v.registry.InsertDelegate(delegate); err != nil {
		delegate.SetSessionData(nil)
		v.mu.Unlock()
		logger.Warn("failed to register delegate", "view", v.id,
			"skill", frame.Namespace, "gui_url", frame.GuiURL, "error", err)
		return
	}
	v.mu.Unlock()

	delegate.CurrentRequested()
	v.emit(events.NewDelegateRequested(frame.Namespace, frame.GuiURL))
}

func (v *SkillView) applySkillsInsert(frame protocol.Frame) {
	skillIDs, err := protocol.SkillList(frame.Data)
	if err != nil {
		logger.Warn("skill insert with a corrupted skill list", "view", v.id, "error", err)
		return
	}
	if len(skillIDs) == 0 {
		logger.Warn("skill insert without skills", "view", v.id)
		return
	}

	v.mu.Lock()
	fresh := make([]string, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		if v.registry.Contains(skillID) {
			logger.Warn("skill insert for an already active skill", "view", v.id, "skill", skillID)
			continue
		}
		fresh = append(fresh, skillID)
	}
	if len(fresh) == 0 {
		v.mu.Unlock()
		return
	}
	if err := v.registry.Insert(frame.Position, fresh); err != nil {
		v.mu.Unlock()
		logger.Warn("rejected skill insert", "view", v.id, "error", err)
		return
	}
	v.mu.Unlock()

	v.emit(events.NewSkillsInserted(frame.Position, fresh))
}

func (v *SkillView) applySkillsRemove(frame protocol.Frame) {
	v.mu.Lock()
	removed, err := v.registry.Remove(frame.Position, frame.ItemsNumber)
	if err != nil {
		v.mu.Unlock()
		logger.Warn("rejected skill remove", "view", v.id, "error", err)
		return
	}

	skillIDs := make([]string, 0, len(removed))
	var delegates []skills.Delegate
	for _, entry := range removed {
		skillIDs = append(skillIDs, entry.SkillID())
		delegates = append(delegates, entry.Delegates()...)
		delete(v.skillData, entry.SkillID())
	}
	v.mu.Unlock()

	// Detach the session reference before the delegates are dropped.
	for _, delegate := range delegates {
		delegate.SetSessionData(nil)
	}
	v.emit(events.NewSkillsRemoved(frame.Position, skillIDs))
}

func (v *SkillView) applySkillsMove(frame protocol.Frame) {
	v.mu.Lock()
	err := v.registry.Move(frame.From, frame.To, frame.ItemsNumber)
	v.mu.Unlock()
	if err != nil {
		logger.Warn("rejected skill move", "view", v.id, "error", err)
		return
	}

	v.emit(events.NewSkillsMoved(frame.From, frame.To, frame.ItemsNumber))
}

func (v *SkillView) applyEventsTriggered(frame protocol.Frame) {
	if frame.Namespace == "" {
		logger.Warn("triggered event without a namespace", "view", v.id)
		return
	}
	if frame.EventName == "" {
		logger.Warn("triggered event without an event name", "view", v.id, "namespace", frame.Namespace)
		return
	}
	data, err := frame.DataMap()
	if err != nil {
		logger.Warn("triggered event with malformed data", "view", v.id,
			"namespace", frame.Namespace, "event", frame.EventName, "error", err)
		return
	}

	target := frame.Namespace
	if target == protocol.SystemNamespace {
		target = ""
	}

	v.mu.Lock()
	if target != "" && !v.registry.Contains(target) {
		v.mu.Unlock()
		logger.Warn("triggered event for an inactive skill", "view", v.id, "skill", target)
		return
	}
	delegates := v.registry.DelegatesFor(target)
	v.mu.Unlock()

	for _, delegate := range delegates {
		delegate.TriggerEvent(frame.EventName, data)
	}
}
