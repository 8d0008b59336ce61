package events

const (
	// KindStatusChanged identifies connection status transitions.
	KindStatusChanged Kind = "connection.status_changed"
)

// StatusChanged carries the computed status a connection moved to.
//
// Status is carried as its string form so this package does not depend on
// the connection state machine.
type StatusChanged struct {
	Base
	Status string
}

// NewStatusChanged creates a connection status transition event.
func NewStatusChanged(status string) StatusChanged {
	return StatusChanged{Base: NewBase(KindStatusChanged), Status: status}
}
