package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

// Event is a decoded notification.
type Event interface {
	isEvent()
}

// RotationEvent is one physical face turn, identified by the color of the
// turned face's center.
type RotationEvent struct {
	Code              byte // raw face/direction code, 0x00-0x0B
	CenterOrientation byte
	Color             puzzle.Color
	Clockwise         bool
}

// OrientationEvent is the absolute attitude of the cube.
type OrientationEvent struct {
	Quat mgl64.Quat
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

func (RotationEvent) isEvent()    {}
func (OrientationEvent) isEvent() {}
func (BatteryEvent) isEvent()     {}

// Face codes count colors in this order; even codes are clockwise.
var codeColors = [6]puzzle.Color{
	puzzle.Blue,
	puzzle.Green,
	puzzle.White,
	puzzle.Yellow,
	puzzle.Red,
	puzzle.Orange,
}

// Decode turns a frame into events. Frame types the puzzle has no use for
// yield no events and no error.
func Decode(f Frame) ([]Event, error) {
	switch f.Type {
	case MsgTypeRotation:
		rots, err := DecodeRotation(f.Payload)
		if err != nil {
			return nil, err
		}
		events := make([]Event, len(rots))
		for i, r := range rots {
			events[i] = r
		}
		return events, nil
	case MsgTypeOrientation:
		o, err := DecodeOrientation(f.Payload)
		if err != nil {
			return nil, err
		}
		return []Event{o}, nil
	case MsgTypeBattery:
		b, err := DecodeBattery(f.Payload)
		if err != nil {
			return nil, err
		}
		return []Event{b}, nil
	default:
		return nil, nil
	}
}

// DecodeRotation decodes a rotation payload: pairs of
// [face_dir] [center_orientation].
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload has odd length %d", ErrInvalidPayload, len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(codeColors) {
			return nil, fmt.Errorf("%w: unknown face code 0x%02X", ErrInvalidPayload, code)
		}
		events = append(events, RotationEvent{
			Code:              code,
			CenterOrientation: payload[i+1],
			Color:             codeColors[idx],
			Clockwise:         code%2 == 0,
		})
	}
	return events, nil
}

// DecodeOrientation decodes an orientation payload, the ASCII string
// "x#y#z#w" of raw quaternion components. Trailing bytes after the last
// number are ignored.
func DecodeOrientation(payload []byte) (OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return OrientationEvent{}, fmt.Errorf("%w: orientation has %d parts, want 4", ErrInvalidPayload, len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return OrientationEvent{}, fmt.Errorf("%w: component %d: %v", ErrInvalidPayload, i, err)
		}
		v[i] = f
	}

	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 || math.IsInf(q.Len(), 0) {
		return OrientationEvent{}, fmt.Errorf("%w: degenerate quaternion", ErrInvalidPayload)
	}
	return OrientationEvent{Quat: q.Normalize()}, nil
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (BatteryEvent, error) {
	if len(payload) < 1 {
		return BatteryEvent{}, fmt.Errorf("%w: empty battery payload", ErrInvalidPayload)
	}
	return BatteryEvent{Level: int(payload[0])}, nil
}

// leadingNumber returns the numeric prefix of s (optional sign, digits, dot).
func leadingNumber(s string) string {
	for i, r := range s {
		switch {
		case r == '-' && i == 0:
		case r >= '0' && r <= '9', r == '.':
		default:
			return s[:i]
		}
	}
	return s
}

// UpFace returns the puzzle face that points up for an attitude.
func UpFace(q mgl64.Quat) puzzle.Face {
	return puzzle.NearestFace(q.Rotate(mgl64.Vec3{0, 1, 0}))
}

// FrontFace returns the puzzle face that points at the viewer.
func FrontFace(q mgl64.Quat) puzzle.Face {
	return puzzle.NearestFace(q.Rotate(mgl64.Vec3{0, 0, 1}))
}
