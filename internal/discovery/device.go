package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Board represents a network-capable board advertising the Arduino OTA service
type Board struct {
	// Instance is the mDNS service instance name (e.g., "feather-garage")
	Instance string

	// Hostname is the mDNS hostname (e.g., "feather-garage.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the OTA upload port
	Port int

	// BoardID is the "board" TXT record (e.g., "adafruit_feather_m0")
	BoardID string

	// Metadata contains all TXT record data
	// Common fields: "board", "ssh_upload", "tcp_check", "auth_upload"
	Metadata map[string]string

	// DiscoveredAt is when the board was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the board
func (b *Board) String() string {
	board := b.BoardID
	if board == "" {
		board = "unknown board"
	}
	return fmt.Sprintf("%s (%s) at %s", b.Instance, board, b.Address())
}

// Address returns host:port for the OTA endpoint
func (b *Board) Address() string {
	return net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Board) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
