package scanner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/j-keck/arping"
)

// ARPChecker treats a host as up when it answers an ARP request. Only hosts
// on a directly attached segment can answer, and raw socket access is
// required.
type ARPChecker struct{}

// NewARPChecker creates an ARP checker. The arping timeout is process-wide.
func NewARPChecker(timeout time.Duration) *ARPChecker {
	arping.SetTimeout(timeout)
	return &ARPChecker{}
}

type arpResult struct {
	up  bool
	err error
}

func (ac *ARPChecker) Check(ctx context.Context, ip string) (bool, error) {
	addr := net.ParseIP(ip)
	if addr == nil || addr.To4() == nil {
		return false, fmt.Errorf("invalid IPv4 address %q", ip)
	}

	done := make(chan arpResult, 1)
	go func() {
		_, _, err := arping.Ping(addr)
		switch {
		case err == nil:
			done <- arpResult{up: true}
		case errors.Is(err, arping.ErrTimeout):
			done <- arpResult{}
		default:
			done <- arpResult{err: fmt.Errorf("arping failed: %w", err)}
		}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-done:
		return r.up, r.err
	}
}
