package session

import "sync"

// ChangeKind discriminates store notifications.
type ChangeKind string

const (
	// ChangeUpdated fires when a key is inserted or overwritten.
	ChangeUpdated ChangeKind = "updated"
	// ChangeDeleted fires when a key is explicitly removed.
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes one store mutation. Value is the value after the
// change, nil for deletions.
type Change struct {
	Key   string
	Kind  ChangeKind
	Value Value
}

// Observer receives store changes.
type Observer func(Change)

// Store is the key-value session state of one active skill. Only the
// protocol dispatcher writes it; delegates and the rendering layer read
// and observe it.
type Store struct {
	mu        sync.Mutex
	values    map[string]Value
	observers []Observer
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{values: map[string]Value{}}
}

// Subscribe registers an observer notified after every mutation, in
// registration order.
func (s *Store) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Value returns the value stored under key.
func (s *Store) Value(key string) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Model returns the data model stored under key, if the key holds one.
func (s *Store) Model(key string) (*DataModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	model, ok := s.values[key].(*DataModel)
	return model, ok
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// SetScalar stores an opaque value under key. A data model previously
// held by the key is discarded.
func (s *Store) SetScalar(key string, value any) {
	s.mu.Lock()
	s.values[key] = Scalar{V: value}
	stored := s.values[key]
	observers := s.observers
	s.mu.Unlock()

	s.notify(observers, Change{Key: key, Kind: ChangeUpdated, Value: stored})
}

// SetRecords stores an ordered record model under key. When the key
// already holds a model, the model is cleared and refilled in place so
// holders bound to its identity observe the update; otherwise a fresh
// model is created.
func (s *Store) SetRecords(key string, records []Record) (*DataModel, error) {
	s.mu.Lock()
	model, ok := s.values[key].(*DataModel)
	if !ok {
		model = NewDataModel()
		s.values[key] = model
	}
	observers := s.observers
	s.mu.Unlock()

	if err := model.ReplaceAll(records); err != nil {
		return nil, err
	}

	s.notify(observers, Change{Key: key, Kind: ChangeUpdated, Value: model})
	return model, nil
}

// Delete removes key from the store. Deleting an absent key succeeds
// without a notification.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	_, existed := s.values[key]
	delete(s.values, key)
	observers := s.observers
	s.mu.Unlock()

	if !existed {
		return
	}
	s.notify(observers, Change{Key: key, Kind: ChangeDeleted})
}

func (s *Store) notify(observers []Observer, change Change) {
	for _, observer := range observers {
		observer(change)
	}
}
