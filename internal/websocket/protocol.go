package websocket

import (
	"encoding/json"
	"fmt"
)

// Control channel message types. The catalogue is closed: anything else on
// the wire is dropped, never an error back to the peer.
const (
	TypePointer      = "POINTER"
	TypeMockupReady  = "MOCKUP_READY"
	TypeCountdown    = "COUNTDOWN"
	TypeScopeItem    = "SCOPE_ITEM"
	TypeSessionEnded = "SESSION_ENDED"
)

// Envelope is the wire frame: a type tag plus a flat payload object.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// PointerPayload carries the host pointer position, normalized over the
// shared video frame. Receivers render it transiently; repeated identical
// payloads must land on the same position (replace, never accumulate).
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MockupPayload broadcasts an AI-generated design image. Nil Url clears it.
type MockupPayload struct {
	Url *string `json:"url"`
}

// CountdownPayload synchronizes the photo-capture overlay across
// participants watching the same feed.
type CountdownPayload struct {
	Seconds   int  `json:"seconds"`
	Capturing bool `json:"capturing"`
}

func Encode(msgType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	return json.Marshal(Envelope{Type: msgType, Data: data})
}

// DecodeEnvelope parses a raw inbound frame. Unknown types come back with
// ok=false so the caller can drop them quietly.
func DecodeEnvelope(raw []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, false
	}
	switch env.Type {
	case TypePointer, TypeMockupReady, TypeCountdown:
		return env, true
	}
	return env, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SanitizePointer clamps coordinates into [0,1]. A malformed pointer is
// still renderable after clamping, so we repair rather than reject.
func SanitizePointer(p PointerPayload) PointerPayload {
	return PointerPayload{X: clamp01(p.X), Y: clamp01(p.Y)}
}
