package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecodeRejectsFramesWithoutType(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "invalid json", raw: "{not json"},
		{name: "empty object", raw: "{}"},
		{name: "empty type", raw: `{"type": ""}`},
		{name: "non-string type", raw: `{"type": 7}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := Decode([]byte(testCase.raw)); err == nil {
				t.Fatalf("expected decode of %q to fail", testCase.raw)
			}
		})
	}
}

func TestDecodeKeepsPositionalFields(t *testing.T) {
	frame, err := Decode([]byte(`{"type": "mycroft.session.move", "from": 1, "to": 3, "items_number": 2}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if frame.Type != TypeSessionMove {
		t.Fatalf("expected type %q, got %q", TypeSessionMove, frame.Type)
	}
	if frame.From != 1 || frame.To != 3 || frame.ItemsNumber != 2 {
		t.Fatalf("expected from=1 to=3 items_number=2, got from=%d to=%d items_number=%d", frame.From, frame.To, frame.ItemsNumber)
	}
}

func TestIsNoiseFiltersKnownPrefixes(t *testing.T) {
	testCases := []struct {
		frameType string
		expected  bool
	}{
		{frameType: "enclosure.eyes.blink", expected: true},
		{frameType: "mycroft-date", expected: true},
		{frameType: "speak", expected: false},
		{frameType: "recognizer_loop:record_begin", expected: false},
	}

	for _, testCase := range testCases {
		if got := IsNoise(testCase.frameType); got != testCase.expected {
			t.Fatalf("expected IsNoise(%q) to be %v, got %v", testCase.frameType, testCase.expected, got)
		}
	}
}

func TestDataMapOnMissingDataIsEmpty(t *testing.T) {
	frame := Frame{Type: TypeEventsTriggered}

	data, err := frame.DataMap()
	if err != nil {
		t.Fatalf("unexpected data map error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty data map, got %v", data)
	}
}

func TestRecordListAcceptsHomogeneousRecords(t *testing.T) {
	value := []any{
		Record{"city": "Ljubljana", "temperature": 21.0},
		Record{"city": "Zagreb", "temperature": 24.0},
	}

	records, mismatch := RecordList(value)
	if mismatch {
		t.Fatalf("expected no field mismatch for homogeneous records")
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["city"] != "Ljubljana" || records[1]["city"] != "Zagreb" {
		t.Fatalf("expected record order to be preserved, got %v", records)
	}
}

func TestRecordListFlagsFieldMismatchButKeepsRecords(t *testing.T) {
	value := []any{
		Record{"city": "Ljubljana"},
		Record{"town": "Kranj"},
	}

	records, mismatch := RecordList(value)
	if !mismatch {
		t.Fatalf("expected a field mismatch to be flagged")
	}
	if len(records) != 2 {
		t.Fatalf("expected mismatched records to still be kept, got %d", len(records))
	}
}

func TestRecordListRejectsNonRecordValues(t *testing.T) {
	testCases := []struct {
		name  string
		value any
	}{
		{name: "scalar", value: "hello"},
		{name: "empty list", value: []any{}},
		{name: "list of scalars", value: []any{"a", "b"}},
		{name: "mixed list", value: []any{Record{"a": 1.0}, "b"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if records, _ := RecordList(testCase.value); records != nil {
				t.Fatalf("expected no records for %v, got %v", testCase.value, records)
			}
		})
	}
}

func TestSkillListExtractsIDsInOrder(t *testing.T) {
	data := json.RawMessage(`[{"skill_id": "weather"}, {"skill_id": "clock"}]`)

	skillIDs, err := SkillList(data)
	if err != nil {
		t.Fatalf("unexpected skill list error: %v", err)
	}
	if len(skillIDs) != 2 || skillIDs[0] != "weather" || skillIDs[1] != "clock" {
		t.Fatalf("expected [weather clock], got %v", skillIDs)
	}
}

func TestSkillListRejectsCorruptedItems(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"skill_id": "weather"}`},
		{name: "wrong key", data: `[{"skill": "weather"}]`},
		{name: "extra keys", data: `[{"skill_id": "weather", "extra": 1}]`},
		{name: "non-string id", data: `[{"skill_id": 4}]`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := SkillList(json.RawMessage(testCase.data)); err == nil {
				t.Fatalf("expected skill list %q to be rejected", testCase.data)
			}
		})
	}
}

func TestUtteranceEncodesWireShape(t *testing.T) {
	raw, err := Utterance("what is the weather")
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Utterances []string `json:"utterances"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded.Type != TypeUtterance {
		t.Fatalf("expected type %q, got %q", TypeUtterance, decoded.Type)
	}
	if len(decoded.Data.Utterances) != 1 || decoded.Data.Utterances[0] != "what is the weather" {
		t.Fatalf("expected a single utterance, got %v", decoded.Data.Utterances)
	}
}

func TestFrameSchemaDescribesTypeField(t *testing.T) {
	schema := FrameSchema()
	if schema == nil {
		t.Fatalf("expected a reflected frame schema")
	}
	if _, ok := schema.Properties.Get("type"); !ok {
		t.Fatalf("expected frame schema to describe the type field")
	}
}
