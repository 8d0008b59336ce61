package events

const (
	// KindListeningChanged identifies recording start/stop on the core.
	KindListeningChanged Kind = "dialog.listening_changed"
	// KindSpeakingChanged identifies audio output start/stop on the core.
	KindSpeakingChanged Kind = "dialog.speaking_changed"
	// KindCurrentSkillChanged identifies intent handler start/completion.
	KindCurrentSkillChanged Kind = "dialog.current_skill_changed"
	// KindNotUnderstood identifies failed intent resolution or recognition.
	KindNotUnderstood Kind = "dialog.not_understood"
	// KindFallbackText identifies spoken reply text relayed by the core.
	KindFallbackText Kind = "dialog.fallback_text"
	// KindSkillMetadata identifies auxiliary skill display data.
	KindSkillMetadata Kind = "dialog.skill_metadata"
)

// ListeningChanged marks when the core starts or stops recording the user.
type ListeningChanged struct {
	Base
	IsListening bool
}

// NewListeningChanged creates a listening state event.
func NewListeningChanged(isListening bool) ListeningChanged {
	return ListeningChanged{Base: NewBase(KindListeningChanged), IsListening: isListening}
}

// SpeakingChanged marks when the core starts or stops producing speech.
type SpeakingChanged struct {
	Base
	IsSpeaking bool
}

// NewSpeakingChanged creates a speaking state event.
func NewSpeakingChanged(isSpeaking bool) SpeakingChanged {
	return SpeakingChanged{Base: NewBase(KindSpeakingChanged), IsSpeaking: isSpeaking}
}

// CurrentSkillChanged carries the skill whose intent handler is running,
// or an empty string when no handler is running.
type CurrentSkillChanged struct {
	Base
	Skill string
}

// NewCurrentSkillChanged creates a current skill change event.
func NewCurrentSkillChanged(skill string) CurrentSkillChanged {
	return CurrentSkillChanged{Base: NewBase(KindCurrentSkillChanged), Skill: skill}
}

// NotUnderstood marks when the core could not resolve the user's intent.
type NotUnderstood struct{ Base }

// NewNotUnderstood creates a not-understood event.
func NewNotUnderstood() NotUnderstood {
	return NotUnderstood{Base: NewBase(KindNotUnderstood)}
}

// FallbackText carries a spoken reply tagged with the skill that was
// current when the reply was produced.
type FallbackText struct {
	Base
	Skill string
	Data  map[string]any
}

// NewFallbackText creates a fallback text event.
func NewFallbackText(skill string, data map[string]any) FallbackText {
	return FallbackText{Base: NewBase(KindFallbackText), Skill: skill, Data: data}
}

// SkillMetadata carries auxiliary display data published by a skill.
type SkillMetadata struct {
	Base
	Data map[string]any
}

// NewSkillMetadata creates a skill metadata event.
func NewSkillMetadata(data map[string]any) SkillMetadata {
	return SkillMetadata{Base: NewBase(KindSkillMetadata), Data: data}
}
