// Package ble connects to a GoCube smart cube and streams its decoded
// notifications.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrServiceNotFound  = errors.New("ble: cube service not found")
)

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("ble: bad uuid %q: %v", s, err))
	}
	return u
}

// eventBuffer bounds how many decoded events may wait for the consumer.
const eventBuffer = 64

// ScanResult represents a discovered cube.
type ScanResult struct {
	Name    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to one cube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *zap.Logger
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic
	events  chan protocol.Event

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int
}

// NewClient enables the default adapter.
func NewClient(log *zap.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		adapter: adapter,
		log:     log,
		events:  make(chan protocol.Event, eventBuffer),
		battery: -1,
	}, nil
}

// Events delivers decoded notifications. Events are dropped when the
// consumer falls behind.
func (c *Client) Events() <-chan protocol.Event {
	return c.events
}

// Scan looks for cubes until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)
	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := r.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, RSSI: r.RSSI, Address: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect attaches to a scanned cube and turns on orientation reports.
func (c *Client) Connect(ctx context.Context, r ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(r.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = r.Name
	c.mu.Unlock()

	c.log.Info("connected to cube", zap.String("name", r.Name), zap.String("address", r.Address.String()))

	if err := c.SendCommand(protocol.CmdEnableOrientation); err != nil {
		c.log.Warn("failed to enable orientation", zap.Error(err))
	}
	return c.SendCommand(protocol.CmdRequestBattery)
}

// Disconnect drops the connection.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}
	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// CalibrateOrientation resets the cube's own orientation reference.
func (c *Client) CalibrateOrientation() error {
	return c.SendCommand(protocol.CmdCalibrateOrientation)
}

func (c *Client) handleNotification(data []byte) {
	frame, err := protocol.ParseFrame(data)
	if err != nil {
		c.log.Debug("dropping bad frame", zap.Error(err))
		return
	}
	events, err := protocol.Decode(frame)
	if err != nil {
		c.log.Debug("dropping undecodable frame",
			zap.String("type", protocol.MessageTypeName(frame.Type)),
			zap.Error(err))
		return
	}
	for _, ev := range events {
		if b, ok := ev.(protocol.BatteryEvent); ok {
			c.mu.Lock()
			c.battery = b.Level
			c.mu.Unlock()
		}
		select {
		case c.events <- ev:
		default:
			c.log.Warn("event queue full, dropping event")
		}
	}
}
