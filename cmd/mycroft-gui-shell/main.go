// mycroft-gui-shell is a terminal presentation surface for the
// assistant: it connects to the core, mirrors the spoken-dialog state,
// and renders session updates of the skills the server activates.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/koscakluka/mycroft-gui-go/gui"
	"github.com/koscakluka/mycroft-gui-go/gui/protocol"
)

func main() {
	// A missing .env is not an error; the environment still applies.
	_ = godotenv.Load()

	coreURL := flag.String("core-url", "", "assistant core websocket address (defaults to $MYCROFT_CORE_URL)")
	noLaunch := flag.Bool("no-launch", false, "do not launch the core loader before connecting")
	describe := flag.Bool("describe-protocol", false, "print the wire frame schemas and exit")
	flag.Parse()

	if *describe {
		if err := describeProtocol(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	url := *coreURL
	if url == "" {
		url = os.Getenv("MYCROFT_CORE_URL")
	}
	if url == "" {
		url = gui.DefaultCoreURL
	}

	if err := run(url, *noLaunch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func describeProtocol(w io.Writer) error {
	for _, schema := range []struct {
		name   string
		schema any
	}{
		{name: "frame", schema: protocol.FrameSchema()},
		{name: "utterance", schema: protocol.UtteranceSchema()},
	} {
		raw, err := json.MarshalIndent(schema.schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s schema: %w", schema.name, err)
		}
		fmt.Fprintf(w, "%s:\n%s\n", schema.name, raw)
	}
	return nil
}

func run(coreURL string, noLaunch bool) error {
	relay := &messageRelay{}

	controllerOpts := []gui.ControllerOption{
		gui.WithCoreURL(coreURL),
		gui.WithStatusChangedCallback(func(status gui.Status) {
			relay.send(coreStatusMsg{status: status})
		}),
		gui.WithListeningChangedCallback(func(isListening bool) {
			relay.send(listeningMsg{isListening: isListening})
		}),
		gui.WithSpeakingChangedCallback(func(isSpeaking bool) {
			relay.send(speakingMsg{isSpeaking: isSpeaking})
		}),
		gui.WithCurrentSkillChangedCallback(func(skill string) {
			relay.send(currentSkillMsg{skill: skill})
		}),
		gui.WithNotUnderstoodCallback(func() {
			relay.send(notUnderstoodMsg{})
		}),
		gui.WithFallbackTextCallback(func(skill string, data map[string]any) {
			text, _ := data["utterance"].(string)
			relay.send(spokenReplyMsg{skill: skill, text: text})
		}),
	}
	if noLaunch {
		controllerOpts = append(controllerOpts, gui.WithCoreLauncher(nil))
	}

	controller := gui.NewController(controllerOpts...)
	defer controller.Close()

	view := gui.NewSkillView(controller,
		gui.WithDelegateFactory(newDelegateFactory(relay)),
		gui.WithViewStatusChangedCallback(func(status gui.Status) {
			relay.send(guiStatusMsg{status: status})
		}),
		gui.WithSkillsInsertedCallback(func(int, []string) {
			relay.send(skillsChangedMsg{})
		}),
		gui.WithSkillsRemovedCallback(func(int, []string) {
			relay.send(skillsChangedMsg{})
		}),
		gui.WithSkillsMovedCallback(func(int, int, int) {
			relay.send(skillsChangedMsg{})
		}),
		gui.WithSessionDataChangedCallback(func(skillID, property string, deleted bool) {
			relay.send(sessionDataMsg{skillID: skillID, property: property, deleted: deleted})
		}),
	)
	defer view.Close()

	if err := controller.Start(context.Background()); err != nil {
		return err
	}

	program := tea.NewProgram(newModel(controller, view), tea.WithAltScreen())
	relay.attach(program)
	_, err := program.Run()
	return err
}

// messageRelay forwards protocol callbacks into the tea program,
// buffering anything that fires before the program exists.
type messageRelay struct {
	mu      sync.Mutex
	program *tea.Program
	backlog []tea.Msg
}

func (r *messageRelay) attach(program *tea.Program) {
	r.mu.Lock()
	r.program = program
	backlog := r.backlog
	r.backlog = nil
	r.mu.Unlock()

	for _, msg := range backlog {
		program.Send(msg)
	}
}

func (r *messageRelay) send(msg tea.Msg) {
	r.mu.Lock()
	program := r.program
	if program == nil {
		r.backlog = append(r.backlog, msg)
	}
	r.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}
