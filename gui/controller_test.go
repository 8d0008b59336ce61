package gui

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestController(t *testing.T, opts ...ControllerOption) *Controller {
	t.Helper()
	c := NewController(append([]ControllerOption{WithCoreLauncher(nil)}, opts...)...)
	c.conn.interval = 10 * time.Millisecond
	t.Cleanup(c.Close)
	return c
}

func feedCore(c *Controller, raw string) {
	c.onCoreMessage([]byte(raw))
}

func TestDialogStateFollowsCoreEvents(t *testing.T) {
	c := newTestController(t)

	feedCore(c, `{"type": "recognizer_loop:record_begin"}`)
	if !c.IsListening() {
		t.Fatalf("expected record begin to start listening")
	}

	feedCore(c, `{"type": "recognizer_loop:record_end"}`)
	if c.IsListening() {
		t.Fatalf("expected record end to stop listening")
	}

	feedCore(c, `{"type": "recognizer_loop:audio_output_start"}`)
	if !c.IsSpeaking() {
		t.Fatalf("expected audio output start to start speaking")
	}

	feedCore(c, `{"type": "recognizer_loop:audio_output_end"}`)
	if c.IsSpeaking() {
		t.Fatalf("expected audio output end to stop speaking")
	}
}

func TestDialogStateIsReadableWhileFramesArrive(t *testing.T) {
	c := newTestController(t)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				c.IsListening()
				c.IsSpeaking()
				c.CurrentSkill()
			}
		}
	}()

	for i := 0; i < 100; i++ {
		feedCore(c, `{"type": "recognizer_loop:record_begin"}`)
		feedCore(c, `{"type": "recognizer_loop:audio_output_start"}`)
		feedCore(c, `{"type": "mycroft.skill.handler.start", "data": {"name": "weather"}}`)
		feedCore(c, `{"type": "recognizer_loop:record_end"}`)
		feedCore(c, `{"type": "recognizer_loop:audio_output_end"}`)
		feedCore(c, `{"type": "mycroft.skill.handler.complete"}`)
	}
	close(done)
	wg.Wait()

	if c.IsListening() || c.IsSpeaking() || c.CurrentSkill() != "" {
		t.Fatalf("expected a quiescent dialog state after the final frames")
	}
}

func TestIntentFailureStopsListeningAndReportsNotUnderstood(t *testing.T) {
	notUnderstood := 0
	var listening []bool
	c := newTestController(t,
		WithNotUnderstoodCallback(func() { notUnderstood++ }),
		WithListeningChangedCallback(func(isListening bool) { listening = append(listening, isListening) }),
	)

	feedCore(c, `{"type": "recognizer_loop:record_begin"}`)
	feedCore(c, `{"type": "intent_failure"}`)
	feedCore(c, `{"type": "mycroft.speech.recognition.unknown"}`)

	if c.IsListening() {
		t.Fatalf("expected intent failure to stop listening")
	}
	if notUnderstood != 2 {
		t.Fatalf("expected both failure types to report not understood, got %d", notUnderstood)
	}
	if len(listening) != 2 || !listening[0] || listening[1] {
		t.Fatalf("expected listening to toggle on then off, got %v", listening)
	}
}

func TestCurrentSkillTracksHandlerLifecycle(t *testing.T) {
	var skills []string
	c := newTestController(t, WithCurrentSkillChangedCallback(func(skill string) {
		skills = append(skills, skill)
	}))

	feedCore(c, `{"type": "mycroft.skill.handler.start", "data": {"name": "weather"}}`)
	if c.CurrentSkill() != "weather" {
		t.Fatalf("expected the handler start to set the current skill, got %q", c.CurrentSkill())
	}

	feedCore(c, `{"type": "mycroft.skill.handler.complete"}`)
	if c.CurrentSkill() != "" {
		t.Fatalf("expected the handler completion to clear the current skill, got %q", c.CurrentSkill())
	}

	if len(skills) != 2 || skills[0] != "weather" || skills[1] != "" {
		t.Fatalf("expected skill transitions [weather, \"\"], got %v", skills)
	}
}

func TestSpeakIsTaggedWithCurrentSkill(t *testing.T) {
	var tagged []string
	c := newTestController(t, WithFallbackTextCallback(func(skill string, data map[string]any) {
		tagged = append(tagged, fmt.Sprintf("%s:%v", skill, data["utterance"]))
	}))

	feedCore(c, `{"type": "mycroft.skill.handler.start", "data": {"name": "weather"}}`)
	feedCore(c, `{"type": "speak", "data": {"utterance": "it is sunny"}}`)
	feedCore(c, `{"type": "mycroft.skill.handler.complete"}`)
	feedCore(c, `{"type": "speak", "data": {"utterance": "anything else?"}}`)

	if len(tagged) != 2 || tagged[0] != "weather:it is sunny" || tagged[1] != ":anything else?" {
		t.Fatalf("expected speak frames tagged with the skill current at the time, got %v", tagged)
	}
}

func TestMetadataIsRelayed(t *testing.T) {
	var relayed []map[string]any
	c := newTestController(t, WithSkillMetadataCallback(func(data map[string]any) {
		relayed = append(relayed, data)
	}))

	feedCore(c, `{"type": "metadata", "data": {"name": "weather"}}`)

	if len(relayed) != 1 || relayed[0]["name"] != "weather" {
		t.Fatalf("expected metadata to be relayed, got %v", relayed)
	}
}

func TestNoisyFrameTypesAreDropped(t *testing.T) {
	notified := 0
	c := newTestController(t, WithSkillMetadataCallback(func(map[string]any) { notified++ }))

	feedCore(c, `{"type": "enclosure.eyes.blink"}`)
	feedCore(c, `{"type": "mycroft-date"}`)

	if notified != 0 {
		t.Fatalf("expected noisy frames to be dropped before any handling")
	}
}

func TestStartConnectsWithinOneReconnectInterval(t *testing.T) {
	server := newWSServer(t)
	launched := 0
	c := NewController(
		WithCoreURL(server.url()),
		WithCoreLauncher(func() error {
			launched++
			return nil
		}),
	)
	c.conn.interval = 10 * time.Millisecond
	t.Cleanup(c.Close)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	if launched != 1 {
		t.Fatalf("expected the core launcher to run once, got %d", launched)
	}
	if status := c.Status(); status == Closed {
		t.Fatalf("expected the armed reconnect timer to leave the Closed state, got %v", status)
	}
	waitFor(t, "core connection to open", func() bool { return c.Status() == Open })
}

func TestStartReportsLauncherFailure(t *testing.T) {
	c := NewController(WithCoreLauncher(func() error {
		return fmt.Errorf("loader missing")
	}))
	t.Cleanup(c.Close)

	if err := c.Start(context.Background()); err == nil {
		t.Fatalf("expected a failed launcher to be reported")
	}
	if status := c.Status(); status != Closed {
		t.Fatalf("expected no connection attempt after a failed launch, got %v", status)
	}
}

func TestSendTextEncodesUtteranceFrame(t *testing.T) {
	server := newWSServer(t)
	c := newTestController(t, WithCoreURL(server.url()))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	waitFor(t, "core connection to open", func() bool { return c.Status() == Open })

	if err := c.SendText("what is the weather"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	select {
	case raw := <-server.inbound:
		var frame struct {
			Type string `json:"type"`
			Data struct {
				Utterances []string `json:"utterances"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("unexpected frame decode error: %v", err)
		}
		if frame.Type != "recognizer_loop:utterance" {
			t.Fatalf("expected an utterance frame, got %q", frame.Type)
		}
		if len(frame.Data.Utterances) != 1 || frame.Data.Utterances[0] != "what is the weather" {
			t.Fatalf("expected the utterance text, got %v", frame.Data.Utterances)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for the utterance frame")
	}
}

func TestSendTextFailsWhileDisconnected(t *testing.T) {
	c := newTestController(t)

	if err := c.SendText("hello"); err == nil {
		t.Fatalf("expected sending without an open core connection to fail")
	}
}
