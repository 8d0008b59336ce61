package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "status changed", event: NewStatusChanged("Open"), expected: KindStatusChanged},
		{name: "listening changed", event: NewListeningChanged(true), expected: KindListeningChanged},
		{name: "speaking changed", event: NewSpeakingChanged(true), expected: KindSpeakingChanged},
		{name: "current skill changed", event: NewCurrentSkillChanged("weather"), expected: KindCurrentSkillChanged},
		{name: "not understood", event: NewNotUnderstood(), expected: KindNotUnderstood},
		{name: "fallback text", event: NewFallbackText("weather", map[string]any{"utterance": "hi"}), expected: KindFallbackText},
		{name: "skill metadata", event: NewSkillMetadata(map[string]any{"name": "weather"}), expected: KindSkillMetadata},
		{name: "skills inserted", event: NewSkillsInserted(0, []string{"weather"}), expected: KindSkillsInserted},
		{name: "skills removed", event: NewSkillsRemoved(0, []string{"weather"}), expected: KindSkillsRemoved},
		{name: "skills moved", event: NewSkillsMoved(0, 1, 1), expected: KindSkillsMoved},
		{name: "session data changed", event: NewSessionDataChanged("weather", "temperature", false), expected: KindSessionDataChanged},
		{name: "delegate requested", event: NewDelegateRequested("weather", "file://weather.qml"), expected: KindDelegateRequested},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestListeningAndSpeakingKindsAreDistinct(t *testing.T) {
	listening := NewListeningChanged(true)
	speaking := NewSpeakingChanged(true)

	if listening.Kind() == speaking.Kind() {
		t.Fatalf("expected listening and speaking kinds to differ, both were %q", listening.Kind())
	}
}
