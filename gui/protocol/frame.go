// Package protocol defines the wire contract spoken over the core and gui
// websockets: one JSON object per text frame, discriminated by "type".
package protocol

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Gui-channel frame types.
const (
	TypeSessionSet      = "mycroft.session.set"
	TypeSessionDelete   = "mycroft.session.delete"
	TypeSessionInsert   = "mycroft.session.insert"
	TypeSessionRemove   = "mycroft.session.remove"
	TypeSessionMove     = "mycroft.session.move"
	TypeGuiShow         = "mycroft.gui.show"
	TypeEventsTriggered = "mycroft.events.triggered"
)

// Core-channel frame types driving the spoken-dialog state.
const (
	TypeIntentFailure      = "intent_failure"
	TypeAudioOutputStart   = "recognizer_loop:audio_output_start"
	TypeAudioOutputEnd     = "recognizer_loop:audio_output_end"
	TypeRecordBegin        = "recognizer_loop:record_begin"
	TypeRecordEnd          = "recognizer_loop:record_end"
	TypeRecognitionUnknown = "mycroft.speech.recognition.unknown"
	TypeHandlerStart       = "mycroft.skill.handler.start"
	TypeHandlerComplete    = "mycroft.skill.handler.complete"
	TypeSpeak              = "speak"
	TypeMetadata           = "metadata"
	TypeUtterance          = "recognizer_loop:utterance"
)

// ActiveSkillsNamespace is the reserved namespace whose insert/remove
// frames mutate the active-skill list instead of a session store.
const ActiveSkillsNamespace = "mycroft.system.active_skills"

// SystemNamespace broadcasts a triggered event to delegates not bound to
// any specific skill.
const SystemNamespace = "system"

// skillIDKey is the single field of each record in an active-skill
// insert payload.
const skillIDKey = "skill_id"

// noisePrefixes mark high-frequency core frame types that are dropped
// before any dialog-state handling.
var noisePrefixes = []string{"enclosure", "mycroft-date"}

// IsNoise reports whether a core frame type is filtered out unprocessed.
func IsNoise(frameType string) bool {
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(frameType, prefix) {
			return true
		}
	}
	return false
}

// Frame is one decoded inbound message. Fields beyond Type are set only
// for the types that carry them; absent integers decode to zero the same
// way the server's peers treat them.
type Frame struct {
	Type        string          `json:"type"`
	Namespace   string          `json:"namespace,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Position    int             `json:"position,omitempty"`
	ItemsNumber int             `json:"items_number,omitempty"`
	From        int             `json:"from,omitempty"`
	To          int             `json:"to,omitempty"`
	Property    string          `json:"property,omitempty"`
	GuiURL      string          `json:"gui_url,omitempty"`
	EventName   string          `json:"event_name,omitempty"`
}

// Decode parses one text frame. A frame that is not a JSON object or has
// a missing or empty type is an error; callers report it and drop the
// frame without mutating any state.
func Decode(raw []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Frame{}, fmt.Errorf("malformed frame: %w", err)
	}
	if frame.Type == "" {
		return Frame{}, fmt.Errorf("frame without a type")
	}
	return frame, nil
}

// DataMap decodes the frame's data payload as a JSON object. A frame
// without data yields an empty map.
func (f Frame) DataMap() (map[string]any, error) {
	if len(f.Data) == 0 {
		return map[string]any{}, nil
	}
	var data map[string]any
	if err := json.Unmarshal(f.Data, &data); err != nil {
		return nil, fmt.Errorf("frame data is not an object: %w", err)
	}
	return data, nil
}

// Record is one row of an ordered data model.
type Record = map[string]any

// RecordList interprets a decoded session value as an ordered list of
// records. It returns nil when the value is not a non-empty list of
// objects; such values are stored as scalars. Mismatch reports that the
// records do not all share the first record's field set, a tolerated
// data-shape anomaly.
func RecordList(value any) (records []Record, mismatch bool) {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}

	var fields []string
	for _, item := range list {
		record, ok := item.(Record)
		if !ok {
			return nil, false
		}
		keys := sortedKeys(record)
		if fields == nil {
			fields = keys
		} else if !equalFields(fields, keys) {
			mismatch = true
		}
		records = append(records, record)
	}

	return records, mismatch
}

// SkillList extracts the skill ids of an active-skill insert payload:
// a list of single-field {"skill_id": string} records, in order.
func SkillList(data json.RawMessage) ([]string, error) {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("skill list is not an array of objects: %w", err)
	}

	skillIDs := make([]string, 0, len(items))
	for _, item := range items {
		if len(item) != 1 {
			return nil, fmt.Errorf("skill list item has fields %v, expected only %q", sortedKeys(item), skillIDKey)
		}
		value, ok := item[skillIDKey]
		if !ok {
			return nil, fmt.Errorf("skill list item has fields %v, expected only %q", sortedKeys(item), skillIDKey)
		}
		skillID, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("skill id %v is not a string", value)
		}
		skillIDs = append(skillIDs, skillID)
	}

	return skillIDs, nil
}

// Utterance encodes the outbound frame asking the core to treat text as
// if it had been spoken by the user.
func Utterance(text string) ([]byte, error) {
	return json.Marshal(outboundUtterance{
		Type: TypeUtterance,
		Data: utteranceData{Utterances: []string{text}},
	})
}

type outboundUtterance struct {
	Type string        `json:"type"`
	Data utteranceData `json:"data"`
}

type utteranceData struct {
	Utterances []string `json:"utterances"`
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func equalFields(a, b []string) bool {
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
