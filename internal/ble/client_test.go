package ble

import (
	"testing"

	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/protocol"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

func newTestClient(buffer int) *Client {
	return &Client{
		log:     zap.NewNop(),
		events:  make(chan protocol.Event, buffer),
		battery: -1,
	}
}

func TestHandleNotificationRotation(t *testing.T) {
	c := newTestClient(4)
	c.handleNotification(protocol.BuildFrame(protocol.MsgTypeRotation, []byte{0x04, 0x00, 0x09, 0x00}))

	if len(c.Events()) != 2 {
		t.Fatalf("queued %d events, want 2", len(c.Events()))
	}
	first := (<-c.Events()).(protocol.RotationEvent)
	if first.Color != puzzle.White || !first.Clockwise {
		t.Errorf("first = %+v", first)
	}
	second := (<-c.Events()).(protocol.RotationEvent)
	if second.Color != puzzle.Red || second.Clockwise {
		t.Errorf("second = %+v", second)
	}
}

func TestHandleNotificationBattery(t *testing.T) {
	c := newTestClient(1)
	c.handleNotification(protocol.BuildFrame(protocol.MsgTypeBattery, []byte{77}))
	if c.Battery() != 77 {
		t.Errorf("Battery() = %d, want 77", c.Battery())
	}
	if len(c.Events()) != 1 {
		t.Errorf("queued %d events, want 1", len(c.Events()))
	}
}

func TestHandleNotificationDropsGarbage(t *testing.T) {
	c := newTestClient(1)
	c.handleNotification([]byte{0x00, 0x01, 0x02})
	c.handleNotification(protocol.BuildFrame(protocol.MsgTypeRotation, []byte{0x01}))
	if len(c.Events()) != 0 {
		t.Errorf("queued %d events from garbage", len(c.Events()))
	}
}

func TestHandleNotificationFullQueue(t *testing.T) {
	c := newTestClient(1)
	frame := protocol.BuildFrame(protocol.MsgTypeRotation, []byte{0x00, 0x00, 0x02, 0x00})
	c.handleNotification(frame)
	if len(c.Events()) != 1 {
		t.Errorf("queued %d events, want 1", len(c.Events()))
	}
}

func TestSendCommandNotConnected(t *testing.T) {
	c := newTestClient(1)
	if err := c.SendCommand(protocol.CmdRequestBattery); err != ErrNotConnected {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}
