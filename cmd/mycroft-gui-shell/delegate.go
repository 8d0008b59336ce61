package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/koscakluka/mycroft-gui-go/gui/skills"
)

// newDelegateFactory builds delegates that render nothing themselves and
// instead forward their lifecycle into the shell's transcript.
func newDelegateFactory(relay *messageRelay) skills.DelegateFactory {
	return func(guiURL string) (skills.Delegate, error) {
		d := &skills.DelegateBase{}
		d.OnCurrentRequested = func() {
			relay.send(delegateCurrentMsg{skillID: d.SkillID(), guiURL: d.GuiURL()})
		}
		d.OnEvent = func(name string, data map[string]any) {
			relay.send(delegateEventMsg{skillID: d.SkillID(), name: name, summary: summarize(data)})
		}
		return d, nil
	}
}

func summarize(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, data[key]))
	}
	return strings.Join(parts, " ")
}
