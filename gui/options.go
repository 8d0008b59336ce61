package gui

import "github.com/koscakluka/mycroft-gui-go/gui/skills"

type ControllerOptions struct {
	coreURL  string
	launcher func() error

	onStatusChanged       func(status Status)
	onListeningChanged    func(isListening bool)
	onSpeakingChanged     func(isSpeaking bool)
	onCurrentSkillChanged func(skill string)
	onNotUnderstood       func()
	onFallbackText        func(skill string, data map[string]any)
	onSkillMetadata       func(data map[string]any)
}

type ControllerOption func(*ControllerOptions)

// WithCoreURL overrides the well-known local address of the assistant
// core's websocket.
func WithCoreURL(url string) ControllerOption {
	return func(o *ControllerOptions) {
		o.coreURL = url
	}
}

// WithCoreLauncher replaces the process launcher invoked by
// [Controller.Start] before the first connection attempt. A nil launcher
// disables launching, for setups where the core is supervised
// externally.
func WithCoreLauncher(launcher func() error) ControllerOption {
	return func(o *ControllerOptions) {
		o.launcher = launcher
	}
}

// WithStatusChangedCallback registers a callback for core connection
// status transitions.
func WithStatusChangedCallback(callback func(status Status)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onStatusChanged = callback
	}
}

// WithListeningChangedCallback registers a callback for recording
// start/stop on the core.
func WithListeningChangedCallback(callback func(isListening bool)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onListeningChanged = callback
	}
}

// WithSpeakingChangedCallback registers a callback for audio output
// start/stop on the core.
func WithSpeakingChangedCallback(callback func(isSpeaking bool)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onSpeakingChanged = callback
	}
}

// WithCurrentSkillChangedCallback registers a callback for intent
// handler start/completion; the skill is empty when no handler runs.
func WithCurrentSkillChangedCallback(callback func(skill string)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onCurrentSkillChanged = callback
	}
}

// WithNotUnderstoodCallback registers a callback for failed intent
// resolution or speech recognition.
func WithNotUnderstoodCallback(callback func()) ControllerOption {
	return func(o *ControllerOptions) {
		o.onNotUnderstood = callback
	}
}

// WithFallbackTextCallback registers a callback for spoken replies,
// tagged with the skill that was current when the reply was produced.
func WithFallbackTextCallback(callback func(skill string, data map[string]any)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onFallbackText = callback
	}
}

// WithSkillMetadataCallback registers a callback for auxiliary skill
// display data.
func WithSkillMetadataCallback(callback func(data map[string]any)) ControllerOption {
	return func(o *ControllerOptions) {
		o.onSkillMetadata = callback
	}
}

type ViewOptions struct {
	factory skills.DelegateFactory

	onStatusChanged      func(status Status)
	onSessionDataChanged func(skillID, property string, deleted bool)
	onDelegateRequested  func(skillID, guiURL string)
	onSkillsInserted     func(position int, skillIDs []string)
	onSkillsRemoved      func(position int, skillIDs []string)
	onSkillsMoved        func(from, to, itemsNumber int)
}

type ViewOption func(*ViewOptions)

// WithDelegateFactory injects the rendering layer's delegate
// constructor. Without a factory, gui.show frames for unknown delegates
// are reported and dropped.
func WithDelegateFactory(factory skills.DelegateFactory) ViewOption {
	return func(o *ViewOptions) {
		o.factory = factory
	}
}

// WithViewStatusChangedCallback registers a callback for gui connection
// status transitions.
func WithViewStatusChangedCallback(callback func(status Status)) ViewOption {
	return func(o *ViewOptions) {
		o.onStatusChanged = callback
	}
}

// WithSessionDataChangedCallback registers a callback for per-skill
// session store writes and deletes.
func WithSessionDataChangedCallback(callback func(skillID, property string, deleted bool)) ViewOption {
	return func(o *ViewOptions) {
		o.onSessionDataChanged = callback
	}
}

// WithDelegateRequestedCallback registers a callback fired every time
// the server asks a delegate to become current, including on creation.
func WithDelegateRequestedCallback(callback func(skillID, guiURL string)) ViewOption {
	return func(o *ViewOptions) {
		o.onDelegateRequested = callback
	}
}

// WithSkillsInsertedCallback registers a callback for applied
// active-skill insertions.
func WithSkillsInsertedCallback(callback func(position int, skillIDs []string)) ViewOption {
	return func(o *ViewOptions) {
		o.onSkillsInserted = callback
	}
}

// WithSkillsRemovedCallback registers a callback for applied
// active-skill removals.
func WithSkillsRemovedCallback(callback func(position int, skillIDs []string)) ViewOption {
	return func(o *ViewOptions) {
		o.onSkillsRemoved = callback
	}
}

// WithSkillsMovedCallback registers a callback for applied active-skill
// relocations.
func WithSkillsMovedCallback(callback func(from, to, itemsNumber int)) ViewOption {
	return func(o *ViewOptions) {
		o.onSkillsMoved = callback
	}
}
