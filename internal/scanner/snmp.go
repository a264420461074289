package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

const oidSysUpTime = ".1.3.6.1.2.1.1.3.0"

// SNMPChecker treats a host as up when it answers an SNMPv2c get
type SNMPChecker struct {
	community string
	port      uint16
	timeout   time.Duration
}

// NewSNMPChecker creates an SNMP checker
func NewSNMPChecker(community string, port uint16, timeout time.Duration) *SNMPChecker {
	if community == "" {
		community = "public"
	}
	if port == 0 {
		port = 161
	}
	return &SNMPChecker{community: community, port: port, timeout: timeout}
}

// Check queries sysUpTime
func (sc *SNMPChecker) Check(ctx context.Context, ip string) (bool, error) {
	snmp := &gosnmp.GoSNMP{
		Target:    ip,
		Port:      sc.port,
		Community: sc.community,
		Version:   gosnmp.Version2c,
		Timeout:   sc.timeout,
		Retries:   1,
		Context:   ctx,
	}

	if err := snmp.Connect(); err != nil {
		return false, fmt.Errorf("connecting to %s: %w", ip, err)
	}
	defer snmp.Conn.Close()

	// Any response, even noSuchObject, means the agent is reachable.
	// No answer within the timeout is the normal down case.
	if _, err := snmp.Get([]string{oidSysUpTime}); err != nil {
		return false, nil
	}
	return true, nil
}
