// Package discovery finds Arduino boards on the local network over mDNS.
//
// Network-capable boards running the ArduinoOTA library advertise the
// "_arduino._tcp" service, with the board identifier in the "board" TXT
// record. The same advertisement is what arduino-cli's network port
// discovery uses.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 5 * time.Second
//	boards, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, b := range boards {
//	    fmt.Println(b)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Boards must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
