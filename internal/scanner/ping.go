package scanner

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-ping/ping"
)

// PingChecker performs ICMP echo checks
type PingChecker struct {
	privileged bool
	timeout    time.Duration
	fallback   Checker
}

// NewPingChecker creates an ICMP checker. Without raw socket access ICMP
// would hang, so every check is handed to fallback instead.
func NewPingChecker(timeout time.Duration, fallback Checker) *PingChecker {
	privileged := os.Geteuid() == 0 || canUseRawSocket()
	return &PingChecker{privileged: privileged, timeout: timeout, fallback: fallback}
}

// Check reports whether ip answers a single echo request
func (pc *PingChecker) Check(ctx context.Context, ip string) (bool, error) {
	if !pc.privileged {
		if pc.fallback == nil {
			return false, nil
		}
		return pc.fallback.Check(ctx, ip)
	}

	pinger, err := ping.NewPinger(ip)
	if err != nil {
		return false, fmt.Errorf("creating pinger: %w", err)
	}
	pinger.Count = 1
	pinger.Timeout = pc.timeout
	pinger.SetPrivileged(true)

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()
	err = pinger.Run()
	close(done)
	if err != nil {
		return false, fmt.Errorf("pinging %s: %w", ip, err)
	}

	return pinger.Statistics().PacketsRecv > 0, nil
}

// canUseRawSocket checks if we can use raw sockets
func canUseRawSocket() bool {
	conn, err := net.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
