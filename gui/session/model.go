package session

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jinzhu/copier"
)

// Record is one row of a DataModel.
type Record = map[string]any

// DataModel is an ordered sequence of homogeneous records. Its identity
// is stable across refills: external holders bound to the model observe
// replacements in place instead of being handed a new model.
type DataModel struct {
	mu        sync.Mutex
	fields    []string
	records   []Record
	observers []func()
}

// NewDataModel creates an empty data model.
func NewDataModel() *DataModel {
	return &DataModel{}
}

// Subscribe registers an observer notified after every mutation.
// Observers are notified in registration order.
func (m *DataModel) Subscribe(observer func()) {
	if observer == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, observer)
}

// InsertRecords inserts a block of records at position, preserving the
// block's relative order. Records are deep-copied so later caller-side
// mutation cannot reach stored state. Records whose field set differs
// from the model's are reported and still stored.
func (m *DataModel) InsertRecords(position int, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	m.mu.Lock()
	if position < 0 || position > len(m.records) {
		length := len(m.records)
		m.mu.Unlock()
		return fmt.Errorf("insert position %d out of range for model of length %d", position, length)
	}

	inserted := make([]Record, 0, len(records))
	for _, record := range records {
		keys := recordFields(record)
		if m.fields == nil {
			m.fields = keys
		} else if !fieldsEqual(m.fields, keys) {
			logger.Warn("record with a mismatched field set stored in data model",
				"expected", m.fields, "encountered", keys)
		}

		stored := Record{}
		if err := copier.CopyWithOption(&stored, record, copier.Option{DeepCopy: true}); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("failed to copy record into model: %w", err)
		}
		inserted = append(inserted, stored)
	}

	m.records = append(m.records[:position], append(inserted, m.records[position:]...)...)
	observers := m.observers
	m.mu.Unlock()

	for _, observer := range observers {
		observer()
	}
	return nil
}

// ReplaceAll clears the model and refills it with records, keeping the
// model's identity, in one notification.
func (m *DataModel) ReplaceAll(records []Record) error {
	m.mu.Lock()
	m.records = nil
	m.fields = nil
	m.mu.Unlock()

	if len(records) == 0 {
		m.notify()
		return nil
	}
	return m.InsertRecords(0, records)
}

// Clear removes every record. The field set is forgotten with them, so
// the next insert defines a fresh one.
func (m *DataModel) Clear() {
	m.mu.Lock()
	m.records = nil
	m.fields = nil
	m.mu.Unlock()

	m.notify()
}

// Len returns the number of records.
func (m *DataModel) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Record returns the record at index i.
func (m *DataModel) Record(i int) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.records) {
		return nil, false
	}
	return m.records[i], true
}

// Records returns the records in order. The slice is a copy; the records
// are shared with the model.
func (m *DataModel) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]Record, len(m.records))
	copy(records, m.records)
	return records
}

// Fields returns the field set of the model's first record, sorted.
func (m *DataModel) Fields() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := make([]string, len(m.fields))
	copy(fields, m.fields)
	return fields
}

func (m *DataModel) notify() {
	m.mu.Lock()
	observers := m.observers
	m.mu.Unlock()

	for _, observer := range observers {
		observer()
	}
}

func recordFields(record Record) []string {
	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func fieldsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
