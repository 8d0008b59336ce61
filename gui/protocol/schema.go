package protocol

import "github.com/invopop/jsonschema"

// FrameSchema reflects the JSON schema of inbound frames, for protocol
// tooling and message validation outside the dispatch path.
func FrameSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&Frame{})
}

// UtteranceSchema reflects the JSON schema of the outbound utterance
// frame.
func UtteranceSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&outboundUtterance{})
}
