// Package protocol implements the GoCube smart cube BLE wire format: frame
// parsing, command building and decoding of the notifications the puzzle
// consumes (face turns, orientation, battery).
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE Service and Characteristic UUIDs
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message type constants
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Command codes for writing to RX characteristic
const (
	CmdRequestBattery       byte = 0x32
	CmdRequestState         byte = 0x33
	CmdResetSolved          byte = 0x35
	CmdDisableOrientation   byte = 0x37
	CmdEnableOrientation    byte = 0x38
	CmdFlashBacklight       byte = 0x41
	CmdCalibrateOrientation byte = 0x57
)

// Frame constants
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid frame prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid frame suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrFrameTooShort   = errors.New("protocol: frame too short")
	ErrInvalidLength   = errors.New("protocol: invalid frame length")
	ErrInvalidPayload  = errors.New("protocol: invalid payload")
)

// Frame is one parsed notification.
type Frame struct {
	Type    byte
	Payload []byte
}

// ParseFrame parses a raw BLE notification.
// Layout: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A], where
// length counts everything after itself and the checksum is the byte sum
// of all bytes before it.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) < 5 {
		return Frame{}, ErrFrameTooShort
	}
	if data[0] != FramePrefix {
		return Frame{}, ErrInvalidPrefix
	}

	end := 2 + int(data[1])
	if len(data) < end {
		return Frame{}, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, end, len(data))
	}
	sumIdx := end - 3
	if sumIdx < 3 {
		return Frame{}, ErrFrameTooShort
	}
	if data[sumIdx+1] != FrameSuffix1 || data[sumIdx+2] != FrameSuffix2 {
		return Frame{}, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return Frame{}, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return Frame{Type: data[2], Payload: data[3:sumIdx]}, nil
}

// BuildFrame encodes a frame, the inverse of ParseFrame.
func BuildFrame(msgType byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, FramePrefix, byte(len(payload)+4), msgType)
	out = append(out, payload...)
	var sum byte
	for _, b := range out {
		sum += b
	}
	return append(out, sum, FrameSuffix1, FrameSuffix2)
}

// BuildCommand creates a command with no payload.
// Format: [0x2A] [0x01] [cmd] [checksum] [0x0D] [0x0A]
func BuildCommand(cmd byte) []byte {
	const length byte = 0x01
	return []byte{FramePrefix, length, cmd, FramePrefix + length + cmd, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
