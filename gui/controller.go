// Package gui implements the client half of the assistant's session
// synchronization protocol: one long-lived connection to the core
// process driving the spoken-dialog state, and one gui connection per
// presentation surface driving its active skills, session data and
// delegates.
package gui

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/koscakluka/mycroft-gui-go/gui/events"
	"github.com/koscakluka/mycroft-gui-go/gui/protocol"
)

// DefaultCoreURL is the well-known local address of the assistant core's
// websocket.
const DefaultCoreURL = "ws://0.0.0.0:8181/core"

// defaultCoreLoader is the binary started before the first connection
// attempt when no launcher is injected.
const defaultCoreLoader = "mycroft-gui-core-loader"

// Controller owns the core connection and the spoken-dialog state
// derived from it. Presentation surfaces register with it so their gui
// connections can follow the core connection's lifecycle.
type Controller struct {
	mu           sync.Mutex
	isListening  bool
	isSpeaking   bool
	currentSkill string
	views        []*SkillView

	conn        *connection
	options     ControllerOptions
	emit        eventEmitter
	closeOnce   sync.Once
	baseContext context.Context
}

// NewController creates a controller bound to the core's well-known
// address. Nothing is dialed until [Controller.Start].
func NewController(opts ...ControllerOption) *Controller {
	options := ControllerOptions{
		coreURL:  DefaultCoreURL,
		launcher: launchCoreLoader,
	}
	for _, opt := range opts {
		opt(&options)
	}

	c := &Controller{
		options:     options,
		emit:        newControllerEventEmitter(options),
		baseContext: context.Background(),
	}
	c.conn = newConnection(c.onCoreMessage)
	c.conn.SetTarget(options.coreURL)
	c.conn.subscribeStatus(c.onCoreStatusChanged)
	return c
}

func launchCoreLoader() error {
	return exec.Command(defaultCoreLoader).Start()
}

// Start launches the assistant core through the injected launcher and
// arms the reconnect timer, so the first connection attempt happens
// within one reconnect interval.
func (c *Controller) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.baseContext = ctx

	ctx, span := tracer.Start(ctx, "controller.start")
	defer span.End()

	if c.options.launcher != nil {
		if err := c.options.launcher(); err != nil {
			recordedErr := fmt.Errorf("failed to launch assistant core: %w", err)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
			return recordedErr
		}
	}

	c.conn.armReconnect()
	return nil
}

// Status returns the computed state of the core connection.
func (c *Controller) Status() Status {
	return c.conn.Status()
}

// IsListening reports whether the core is recording the user.
func (c *Controller) IsListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isListening
}

// IsSpeaking reports whether the core is producing audio output.
func (c *Controller) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSpeaking
}

// CurrentSkill returns the skill whose intent handler is running, or an
// empty string.
func (c *Controller) CurrentSkill() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentSkill
}

// RegisterView subscribes a presentation surface to core status
// transitions. The view immediately observes the current status.
func (c *Controller) RegisterView(view *SkillView) {
	if view == nil {
		return
	}
	c.mu.Lock()
	c.views = append(c.views, view)
	c.mu.Unlock()

	view.coreStatusChanged(c.Status())
}

// SendRequest writes one raw frame to the core. Sending on anything but
// an open connection is an error.
func (c *Controller) SendRequest(payload []byte) error {
	if err := c.conn.send(payload); err != nil {
		span := trace.SpanFromContext(c.baseContext)
		span.RecordError(err)
		return err
	}
	return nil
}

// SendText asks the core to treat text as a spoken utterance.
func (c *Controller) SendText(text string) error {
	payload, err := protocol.Utterance(text)
	if err != nil {
		return fmt.Errorf("failed to encode utterance: %w", err)
	}
	return c.SendRequest(payload)
}

// Close shuts the core connection down and disarms reconnection.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.conn.close()
	})
}

func (c *Controller) onCoreStatusChanged(status Status) {
	c.emit(events.NewStatusChanged(status.String()))

	c.mu.Lock()
	views := make([]*SkillView, len(c.views))
	copy(views, c.views)
	c.mu.Unlock()

	for _, view := range views {
		view.coreStatusChanged(status)
	}
}

// onCoreMessage derives the spoken-dialog state from the disjoint event
// subset the core emits on its connection.
func (c *Controller) onCoreMessage(raw []byte) {
	frame, err := protocol.Decode(raw)
	if err != nil {
		logger.Warn("discarding malformed core frame", "error", err)
		return
	}

	// High-frequency types are filtered before any state handling so
	// subscribers are not drowned in notification storms.
	if protocol.IsNoise(frame.Type) {
		return
	}

	switch frame.Type {
	case protocol.TypeIntentFailure:
		c.setListening(false)
		c.emit(events.NewNotUnderstood())
	case protocol.TypeRecognitionUnknown:
		c.emit(events.NewNotUnderstood())
	case protocol.TypeAudioOutputStart:
		c.setSpeaking(true)
	case protocol.TypeAudioOutputEnd:
		c.setSpeaking(false)
	case protocol.TypeRecordBegin:
		c.setListening(true)
	case protocol.TypeRecordEnd:
		c.setListening(false)
	case protocol.TypeHandlerStart:
		data, err := frame.DataMap()
		if err != nil {
			logger.Warn("discarding handler start frame without data", "error", err)
			return
		}
		skill, _ := data["name"].(string)
		c.setCurrentSkill(skill)
	case protocol.TypeHandlerComplete:
		c.setCurrentSkill("")
	case protocol.TypeSpeak:
		data, err := frame.DataMap()
		if err != nil {
			logger.Warn("discarding speak frame with malformed data", "error", err)
			return
		}
		c.emit(events.NewFallbackText(c.CurrentSkill(), data))
	case protocol.TypeMetadata:
		data, err := frame.DataMap()
		if err != nil {
			logger.Warn("discarding metadata frame with malformed data", "error", err)
			return
		}
		c.emit(events.NewSkillMetadata(data))
	}
}

func (c *Controller) setListening(isListening bool) {
	c.mu.Lock()
	c.isListening = isListening
	c.mu.Unlock()

	c.emit(events.NewListeningChanged(isListening))
}

func (c *Controller) setSpeaking(isSpeaking bool) {
	c.mu.Lock()
	c.isSpeaking = isSpeaking
	c.mu.Unlock()

	c.emit(events.NewSpeakingChanged(isSpeaking))
}

func (c *Controller) setCurrentSkill(skill string) {
	c.mu.Lock()
	c.currentSkill = skill
	c.mu.Unlock()

	c.emit(events.NewCurrentSkillChanged(skill))
}
