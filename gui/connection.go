package gui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Status is the externally visible state of a connection. It is computed
// from the raw socket state and the reconnect timer, never stored: an
// armed reconnect timer reports Connecting regardless of the socket.
type Status int

const (
	Closed Status = iota
	Connecting
	Open
	Closing
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Connecting:
		return "Connecting"
	case Open:
		return "Open"
	case Closing:
		return "Closing"
	default:
		return "Connecting"
	}
}

// socketState mirrors the raw websocket lifecycle underneath the
// computed status.
type socketState int

const (
	socketUnconnected socketState = iota
	socketConnecting
	socketConnected
	socketClosing
)

const reconnectInterval = time.Second

// connection wraps one websocket and its reconnect policy. Failures are
// never fatal: while a target exists and the peer is expected reachable,
// a fixed-interval timer keeps force-closing and redialing forever.
//
// Frames of one connection are delivered to onMessage from a single read
// loop, so a handler sees them fully serialized in arrival order.
type connection struct {
	mu       sync.Mutex
	target   string
	conn     *websocket.Conn
	state    socketState
	interval time.Duration

	reconnectArmed bool
	reconnectTimer *time.Timer

	// generation invalidates dial attempts and read loops that outlive
	// the socket they were started for.
	generation int

	onMessage func(raw []byte)
	// reachable gates reconnect attempts; per-view connections hold the
	// core connection's status here.
	reachable func() bool

	onStatus []func(Status)
}

func newConnection(onMessage func(raw []byte)) *connection {
	return &connection{
		interval:  reconnectInterval,
		onMessage: onMessage,
		reachable: func() bool { return true },
	}
}

// subscribeStatus registers a status observer. Observers are notified in
// registration order on every state transition.
func (c *connection) subscribeStatus(observer func(Status)) {
	if observer == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = append(c.onStatus, observer)
}

// Status computes the visible state: an armed reconnect timer wins, then
// the raw socket state maps 1:1, and anything unknown is Connecting.
func (c *connection) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *connection) statusLocked() Status {
	if c.reconnectArmed {
		return Connecting
	}
	switch c.state {
	case socketUnconnected:
		return Closed
	case socketConnecting:
		return Connecting
	case socketConnected:
		return Open
	case socketClosing:
		return Closing
	default:
		return Connecting
	}
}

// Target returns the current dial target.
func (c *connection) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// SetTarget stores a new dial target. Setting the current target again
// is a no-op; otherwise an open session is closed and reopened against
// the new target immediately.
func (c *connection) SetTarget(target string) {
	c.mu.Lock()
	if c.target == target {
		c.mu.Unlock()
		return
	}
	c.target = target
	wasOpen := c.statusLocked() == Open
	c.mu.Unlock()

	if wasOpen {
		c.closeSocket()
		c.open()
	}
}

// clearTarget drops the target and every reconnect attempt with it.
func (c *connection) clearTarget() {
	c.mu.Lock()
	c.target = ""
	c.disarmReconnectLocked()
	c.mu.Unlock()
}

// open starts an asynchronous dial against the current target. The state
// machine moves to Connecting immediately; the dial outcome arrives on
// its own goroutine.
func (c *connection) open() {
	c.mu.Lock()
	target := c.target
	if target == "" {
		c.mu.Unlock()
		return
	}
	c.generation++
	generation := c.generation
	c.state = socketConnecting
	c.mu.Unlock()

	c.notifyStatus()
	go c.dial(generation, target)
}

func (c *connection) dial(generation int, target string) {
	conn, _, err := websocket.DefaultDialer.Dial(target, nil)

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		c.state = socketUnconnected
		if c.reachable() {
			c.armReconnectLocked()
		}
		c.mu.Unlock()
		logger.Warn("connection attempt failed", "target", target, "error", err)
		c.notifyStatus()
		return
	}

	c.conn = conn
	c.state = socketConnected
	c.disarmReconnectLocked()
	c.mu.Unlock()

	c.notifyStatus()
	go c.readLoop(generation, conn)
}

func (c *connection) readLoop(generation int, conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if generation != c.generation {
				c.mu.Unlock()
				return
			}
			c.conn = nil
			c.state = socketUnconnected
			if c.target != "" && c.reachable() {
				c.armReconnectLocked()
			}
			c.mu.Unlock()
			c.notifyStatus()
			return
		}

		c.mu.Lock()
		stale := generation != c.generation
		c.mu.Unlock()
		if stale {
			return
		}
		if c.onMessage != nil {
			c.onMessage(raw)
		}
	}
}

// send writes one text frame. Sending on anything but an open session is
// an error, never a queue.
func (c *connection) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != socketConnected || c.conn == nil {
		return fmt.Errorf("connection to %s is not open", c.target)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// closeSocket force-closes the socket without touching the reconnect
// timer; reconnect ticks use it before redialing.
func (c *connection) closeSocket() {
	c.mu.Lock()
	c.generation++
	conn := c.conn
	c.conn = nil
	c.state = socketUnconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	c.notifyStatus()
}

// close shuts the connection down and disarms reconnection.
func (c *connection) close() {
	c.mu.Lock()
	c.disarmReconnectLocked()
	c.generation++
	conn := c.conn
	c.conn = nil
	// A dial may still be in flight; its stale generation makes it a
	// no-op, so the state must be reset here.
	if conn != nil {
		c.state = socketClosing
	} else {
		c.state = socketUnconnected
	}
	c.mu.Unlock()

	if conn != nil {
		c.notifyStatus()
		conn.Close()
		c.mu.Lock()
		c.state = socketUnconnected
		c.mu.Unlock()
	}
	c.notifyStatus()
}

// armReconnect starts the perpetual retry loop without waiting for a
// failed dial; the controller arms it on startup so the first attempt
// happens within one interval.
func (c *connection) armReconnect() {
	c.mu.Lock()
	c.armReconnectLocked()
	c.mu.Unlock()
	c.notifyStatus()
}

func (c *connection) armReconnectLocked() {
	if c.reconnectArmed {
		return
	}
	c.reconnectArmed = true
	c.reconnectTimer = time.AfterFunc(c.interval, c.reconnectTick)
}

func (c *connection) disarmReconnectLocked() {
	if !c.reconnectArmed {
		return
	}
	c.reconnectArmed = false
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

// reconnectTick force-closes and redials the current target, then
// rearms itself; the timer is disarmed the instant a dial succeeds.
func (c *connection) reconnectTick() {
	c.mu.Lock()
	if !c.reconnectArmed {
		c.mu.Unlock()
		return
	}
	c.reconnectTimer = time.AfterFunc(c.interval, c.reconnectTick)
	c.mu.Unlock()

	c.closeSocket()
	c.open()
}

func (c *connection) notifyStatus() {
	c.mu.Lock()
	status := c.statusLocked()
	observers := c.onStatus
	c.mu.Unlock()

	for _, observer := range observers {
		observer(status)
	}
}
