package gui

import "github.com/koscakluka/mycroft-gui-go/gui/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newControllerEventEmitter(opts ControllerOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.StatusChanged:
			if opts.onStatusChanged != nil {
				opts.onStatusChanged(statusFromString(typedEvent.Status))
			}
		case events.ListeningChanged:
			if opts.onListeningChanged != nil {
				opts.onListeningChanged(typedEvent.IsListening)
			}
		case events.SpeakingChanged:
			if opts.onSpeakingChanged != nil {
				opts.onSpeakingChanged(typedEvent.IsSpeaking)
			}
		case events.CurrentSkillChanged:
			if opts.onCurrentSkillChanged != nil {
				opts.onCurrentSkillChanged(typedEvent.Skill)
			}
		case events.NotUnderstood:
			if opts.onNotUnderstood != nil {
				opts.onNotUnderstood()
			}
		case events.FallbackText:
			if opts.onFallbackText != nil {
				opts.onFallbackText(typedEvent.Skill, typedEvent.Data)
			}
		case events.SkillMetadata:
			if opts.onSkillMetadata != nil {
				opts.onSkillMetadata(typedEvent.Data)
			}
		}
	}
}

func newViewEventEmitter(opts ViewOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.StatusChanged:
			if opts.onStatusChanged != nil {
				opts.onStatusChanged(statusFromString(typedEvent.Status))
			}
		case events.SessionDataChanged:
			if opts.onSessionDataChanged != nil {
				opts.onSessionDataChanged(typedEvent.SkillID, typedEvent.Property, typedEvent.Deleted)
			}
		case events.DelegateRequested:
			if opts.onDelegateRequested != nil {
				opts.onDelegateRequested(typedEvent.SkillID, typedEvent.GuiURL)
			}
		case events.SkillsInserted:
			if opts.onSkillsInserted != nil {
				opts.onSkillsInserted(typedEvent.Position, typedEvent.SkillIDs)
			}
		case events.SkillsRemoved:
			if opts.onSkillsRemoved != nil {
				opts.onSkillsRemoved(typedEvent.Position, typedEvent.SkillIDs)
			}
		case events.SkillsMoved:
			if opts.onSkillsMoved != nil {
				opts.onSkillsMoved(typedEvent.From, typedEvent.To, typedEvent.ItemsNumber)
			}
		}
	}
}

func statusFromString(status string) Status {
	switch status {
	case "Closed":
		return Closed
	case "Open":
		return Open
	case "Closing":
		return Closing
	default:
		return Connecting
	}
}
