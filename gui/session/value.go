// Package session holds the per-skill key-value state that drives
// delegate content, with change notification for the rendering layer.
package session

// ValueKind discriminates the two shapes a session value can take.
type ValueKind string

const (
	// KindScalar marks an opaque JSON-derived value stored as-is.
	KindScalar ValueKind = "scalar"
	// KindModel marks an ordered sequence of homogeneous records.
	KindModel ValueKind = "model"
)

// Value is the tagged union stored under one session store key.
type Value interface {
	ValueKind() ValueKind
}

// Scalar wraps an opaque JSON-derived value.
type Scalar struct {
	V any
}

func (Scalar) ValueKind() ValueKind { return KindScalar }

func (*DataModel) ValueKind() ValueKind { return KindModel }
