package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type advertised by ArduinoOTA
	ServiceType = "_arduino._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for board discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the ArduinoOTA port used when the advertisement omits one
	DefaultPort = 65280

	// BoardKey is the TXT record carrying the board identifier
	BoardKey = "board"

	// AuthKey is the TXT record set to "yes" when OTA uploads need a password
	AuthKey = "auth_upload"
)

// Browser abstracts the mDNS resolver so scans can be tested without a network
type Browser interface {
	Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
}

// Scanner handles mDNS board discovery
type Scanner struct {
	// Timeout is the maximum time to wait for board discovery
	Timeout time.Duration

	// newBrowser creates the resolver; replaced in tests
	newBrowser func() (Browser, error)
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
		newBrowser: func() (Browser, error) {
			return zeroconf.NewResolver(nil)
		},
	}
}

// Scan discovers all boards on the local network until the timeout or ctx
// expires. Boards are returned sorted by instance name; repeated
// advertisements of the same instance are collapsed.
func (s *Scanner) Scan(ctx context.Context) ([]*Board, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := s.newBrowser()
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	seen := make(map[string]*Board)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if board := parseServiceEntry(entry); board != nil {
					seen[board.Instance] = board
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		cancel()
		wg.Wait()
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	wg.Wait()

	boards := make([]*Board, 0, len(seen))
	for _, b := range seen {
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].Instance < boards[j].Instance })

	return boards, nil
}

// WaitForBoard waits for a specific board by instance name
// Returns the board or an error if not found within timeout
func (s *Scanner) WaitForBoard(ctx context.Context, instance string) (*Board, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := s.newBrowser()
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Board, 1)

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if board := parseServiceEntry(entry); board != nil && board.Instance == instance {
					found <- board
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case board := <-found:
		return board, nil
	case <-ctx.Done():
		select {
		case board := <-found:
			return board, nil
		default:
		}
		return nil, fmt.Errorf("board %s not found within timeout", instance)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Board
// Returns nil if the entry has no usable address
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Board {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	return &Board{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		BoardID:      metadata[BoardKey],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// DiscoverBoards is a convenience function to scan with a custom timeout
func DiscoverBoards(ctx context.Context, timeout time.Duration) ([]*Board, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(ctx)
}

// FindBoard waits up to timeout for the board advertising as instance
func FindBoard(ctx context.Context, timeout time.Duration, instance string) (*Board, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.WaitForBoard(ctx, instance)
}
