// Package events defines the typed notification contract of the GUI client.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - connection.*
//   - dialog.*
//   - skills.*
//   - session.*
//   - gui.*
//
// Semantics used across the package:
//
//   - Changed: mutable point-in-time snapshot that can change over time.
//   - Inserted/Removed/Moved: a positional mutation of the active-skill
//     list, already applied when the event is observed.
//   - Requested: the server asked for something transient; no local state
//     changed beyond the request flag.
//
// connection events
//
//   - StatusChanged (connection.status_changed): a connection's computed
//     status moved between Closed, Connecting, Open and Closing.
//
// dialog events
//
//   - ListeningChanged (dialog.listening_changed): the core started or
//     stopped recording the user.
//   - SpeakingChanged (dialog.speaking_changed): audio output started or
//     ended.
//   - CurrentSkillChanged (dialog.current_skill_changed): an intent handler
//     started or completed; empty skill means no handler is running.
//   - NotUnderstood (dialog.not_understood): the core failed to resolve an
//     intent or recognize the utterance.
//   - FallbackText (dialog.fallback_text): a spoken reply arrived, tagged
//     with the skill that was current when it was produced.
//   - SkillMetadata (dialog.skill_metadata): a skill published auxiliary
//     display data outside any session.
//
// skills events
//
//   - SkillsInserted (skills.inserted): a contiguous block of skill ids
//     became active at a position.
//   - SkillsRemoved (skills.removed): a contiguous block of skills was
//     deactivated; their session data and delegates are already gone.
//   - SkillsMoved (skills.moved): a contiguous block was relocated.
//
// session events
//
//   - SessionDataChanged (session.data_changed): one property of one
//     skill's session store was written or deleted.
//
// gui events
//
//   - DelegateRequested (gui.delegate_requested): the server asked a
//     delegate to become the current one; fires on creation and on every
//     repeated show.
package events
