package protocol

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

func TestFrameRoundTrip(t *testing.T) {
	raw := BuildFrame(MsgTypeRotation, []byte{0x08, 0x03, 0x05, 0x00})
	f, err := ParseFrame(raw)
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != MsgTypeRotation {
		t.Errorf("type = 0x%02X", f.Type)
	}
	if !bytes.Equal(f.Payload, []byte{0x08, 0x03, 0x05, 0x00}) {
		t.Errorf("payload = %v", f.Payload)
	}
}

func TestParseFrameErrors(t *testing.T) {
	good := BuildFrame(MsgTypeBattery, []byte{80})

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0x00

	badSum := append([]byte(nil), good...)
	badSum[len(badSum)-3]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x2A, 0x01}, ErrFrameTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"checksum", badSum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
		{"truncated", good[:len(good)-1], ErrInvalidLength},
	}
	for _, tt := range tests {
		if _, err := ParseFrame(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	got := BuildCommand(CmdEnableOrientation)
	want := []byte{0x2A, 0x01, 0x38, 0x63, 0x0D, 0x0A}
	if !bytes.Equal(got, want) {
		t.Errorf("BuildCommand = % X, want % X", got, want)
	}
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x08, 0x03, 0x05, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	want := []RotationEvent{
		{Code: 0x08, CenterOrientation: 0x03, Color: puzzle.Red, Clockwise: true},
		{Code: 0x05, CenterOrientation: 0x00, Color: puzzle.White, Clockwise: false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events", len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}

	if _, err := DecodeRotation([]byte{0x01}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("odd payload: err = %v", err)
	}
	if _, err := DecodeRotation([]byte{0x0C, 0x00}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("bad code: err = %v", err)
	}
}

func TestDecodeOrientation(t *testing.T) {
	ev, err := DecodeOrientation([]byte("0#0#0#1000\x7a"))
	if err != nil {
		t.Fatal(err)
	}
	if !nearQuat(ev.Quat, mgl64.QuatIdent()) {
		t.Errorf("quat = %v, want identity", ev.Quat)
	}
	if UpFace(ev.Quat) != puzzle.U || FrontFace(ev.Quat) != puzzle.F {
		t.Errorf("faces = %v %v", UpFace(ev.Quat), FrontFace(ev.Quat))
	}

	// Half a turn around X: up points down, front points back.
	ev, err = DecodeOrientation([]byte("-1000#0#0#0"))
	if err != nil {
		t.Fatal(err)
	}
	if UpFace(ev.Quat) != puzzle.D || FrontFace(ev.Quat) != puzzle.B {
		t.Errorf("faces = %v %v, want D B", UpFace(ev.Quat), FrontFace(ev.Quat))
	}

	for _, bad := range []string{"1#2#3", "a#0#0#1", "0#0#0#0"} {
		if _, err := DecodeOrientation([]byte(bad)); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("DecodeOrientation(%q) err = %v", bad, err)
		}
	}
}

func TestDecodeDispatch(t *testing.T) {
	events, err := Decode(Frame{Type: MsgTypeBattery, Payload: []byte{64}})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0] != (BatteryEvent{Level: 64}) {
		t.Errorf("events = %v", events)
	}

	events, err = Decode(Frame{Type: MsgTypeCubeType, Payload: []byte{1}})
	if err != nil || len(events) != 0 {
		t.Errorf("unhandled type: events = %v, err = %v", events, err)
	}
}

func nearQuat(a, b mgl64.Quat) bool {
	return math.Abs(a.W-b.W) < 1e-12 && a.V.Sub(b.V).Len() < 1e-12
}
