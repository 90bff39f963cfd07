package websocket

import (
	"encoding/json"
	"testing"
)

func TestDecodeEnvelopeClosedCatalogue(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOk bool
		want   string
	}{
		{name: "pointer", raw: `{"type":"POINTER","data":{"x":0.5,"y":0.5}}`, wantOk: true, want: TypePointer},
		{name: "mockup", raw: `{"type":"MOCKUP_READY","data":{"url":"https://x/m.png"}}`, wantOk: true, want: TypeMockupReady},
		{name: "countdown", raw: `{"type":"COUNTDOWN","data":{"seconds":3,"capturing":false}}`, wantOk: true, want: TypeCountdown},
		{name: "scope item is server-originated only", raw: `{"type":"SCOPE_ITEM","data":{}}`, wantOk: false},
		{name: "session ended is server-originated only", raw: `{"type":"SESSION_ENDED"}`, wantOk: false},
		{name: "unknown type", raw: `{"type":"EVAL","data":{}}`, wantOk: false},
		{name: "not json", raw: `POINTER 0.5 0.5`, wantOk: false},
		{name: "empty", raw: ``, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := DecodeEnvelope([]byte(tt.raw))
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && env.Type != tt.want {
				t.Errorf("Type = %q, want %q", env.Type, tt.want)
			}
		})
	}
}

func TestSanitizePointerClamps(t *testing.T) {
	tests := []struct {
		name string
		in   PointerPayload
		want PointerPayload
	}{
		{name: "in range untouched", in: PointerPayload{X: 0.3, Y: 0.9}, want: PointerPayload{X: 0.3, Y: 0.9}},
		{name: "negative clamps to zero", in: PointerPayload{X: -0.2, Y: -7}, want: PointerPayload{X: 0, Y: 0}},
		{name: "overflow clamps to one", in: PointerPayload{X: 1.5, Y: 300}, want: PointerPayload{X: 1, Y: 1}},
		{name: "mixed", in: PointerPayload{X: -1, Y: 0.5}, want: PointerPayload{X: 0, Y: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePointer(tt.in); got != tt.want {
				t.Errorf("SanitizePointer(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	frame, err := Encode(TypeCountdown, CountdownPayload{Seconds: 3, Capturing: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("Unmarshal envelope: %v", err)
	}
	if env.Type != TypeCountdown {
		t.Errorf("Type = %q, want %q", env.Type, TypeCountdown)
	}

	var payload CountdownPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	if payload.Seconds != 3 || !payload.Capturing {
		t.Errorf("payload = %+v", payload)
	}
}

func TestEncodeSessionEndedHasNoPayload(t *testing.T) {
	frame, err := Encode(TypeSessionEnded, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if env.Type != TypeSessionEnded {
		t.Errorf("Type = %q", env.Type)
	}
}
