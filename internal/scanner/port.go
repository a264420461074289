package scanner

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultPorts are tried by the TCP checker when none are configured
var DefaultPorts = []int{22, 80, 443, 161, 23, 8080}

// TCPChecker treats a host as up when any of its ports accepts a connection
type TCPChecker struct {
	ports   []int
	timeout time.Duration
}

// NewTCPChecker creates a TCP connect checker
func NewTCPChecker(ports []int, timeout time.Duration) *TCPChecker {
	if len(ports) == 0 {
		ports = DefaultPorts
	}
	return &TCPChecker{ports: ports, timeout: timeout}
}

// Check dials each port in turn and stops at the first that connects
func (tc *TCPChecker) Check(ctx context.Context, ip string) (bool, error) {
	dialer := &net.Dialer{Timeout: tc.timeout}
	for _, port := range tc.ports {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
		if err == nil {
			conn.Close()
			return true, nil
		}
	}
	return false, nil
}
