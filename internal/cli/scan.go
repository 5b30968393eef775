package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/ble"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/logger"
)

const scanTimeout = 5 * time.Second

// scanForCube performs a single scan, which is enough for macOS BLE
// discovery.
func scanForCube() (*ble.Client, []ble.ScanResult, error) {
	fmt.Println("Scanning for GoCube devices...")

	client, err := ble.NewClient(logger.Named("ble"))
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	results, err := client.Scan(ctx, scanTimeout)
	if err != nil {
		return client, nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(results) == 0 {
		return client, nil, nil
	}

	fmt.Printf("Found: %s\n", results[0].Name)
	return client, results, nil
}

// pickDevice prefers the last connected cube when it shows up in results.
func pickDevice(results []ble.ScanResult, lastAddr string) ble.ScanResult {
	if lastAddr != "" {
		for _, r := range results {
			if r.Address.String() == lastAddr {
				return r
			}
		}
	}
	return results[0]
}
