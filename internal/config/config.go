package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paularlott/cli"
)

type Config struct {
	ListenAddr       string
	APIAuthToken     string
	SeedFile         string
	JournalDSN       string
	LogLevel         string
	LogFormat        string
	ProbeInterval    time.Duration
	ProbeTimeout     time.Duration
	ProbeMode        string
	ProbePorts       string
	ProbeConcurrency int
	SNMPCommunity    string
}

var (
	listenAddr       string
	apiAuthToken     string
	seedFile         string
	journalDSN       string
	logLevel         string
	logFormat        string
	probeInterval    int
	probeTimeout     int
	probeMode        string
	probePorts       string
	probeConcurrency int
	snmpCommunity    string
)

func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "addr",
			Usage:        "Server listen address",
			EnvVars:      []string{"LABELINV_LISTEN_ADDR"},
			DefaultValue: ":8080",
			AssignTo:     &listenAddr,
		},
		&cli.StringFlag{
			Name:     "api-token",
			Usage:    "API bearer token",
			EnvVars:  []string{"LABELINV_API_TOKEN"},
			AssignTo: &apiAuthToken,
		},
		&cli.StringFlag{
			Name:     "seed",
			Usage:    "YAML file with the initial labels and devices (built-in dataset if empty)",
			EnvVars:  []string{"LABELINV_SEED"},
			AssignTo: &seedFile,
		},
		&cli.StringFlag{
			Name:         "journal",
			Usage:        "SQLite DSN for the change journal",
			EnvVars:      []string{"LABELINV_JOURNAL"},
			DefaultValue: ":memory:",
			AssignTo:     &journalDSN,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (trace, debug, info, warn, error)",
			EnvVars:      []string{"LABELINV_LOG_LEVEL"},
			DefaultValue: "info",
			AssignTo:     &logLevel,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			EnvVars:      []string{"LABELINV_LOG_FORMAT"},
			DefaultValue: "console",
			AssignTo:     &logFormat,
		},
		&cli.IntFlag{
			Name:         "probe-interval",
			Usage:        "Seconds between status probes, 0 disables probing",
			EnvVars:      []string{"LABELINV_PROBE_INTERVAL"},
			DefaultValue: 0,
			AssignTo:     &probeInterval,
		},
		&cli.IntFlag{
			Name:         "probe-timeout",
			Usage:        "Per-device probe timeout in seconds",
			EnvVars:      []string{"LABELINV_PROBE_TIMEOUT"},
			DefaultValue: 2,
			AssignTo:     &probeTimeout,
		},
		&cli.StringFlag{
			Name:         "probe-mode",
			Usage:        "Probe method (ping, tcp, snmp, arp)",
			EnvVars:      []string{"LABELINV_PROBE_MODE"},
			DefaultValue: "ping",
			AssignTo:     &probeMode,
		},
		&cli.StringFlag{
			Name:     "probe-ports",
			Usage:    "Comma-separated TCP ports for the tcp probe",
			EnvVars:  []string{"LABELINV_PROBE_PORTS"},
			AssignTo: &probePorts,
		},
		&cli.IntFlag{
			Name:         "probe-concurrency",
			Usage:        "Devices probed in parallel",
			EnvVars:      []string{"LABELINV_PROBE_CONCURRENCY"},
			DefaultValue: 8,
			AssignTo:     &probeConcurrency,
		},
		&cli.StringFlag{
			Name:         "snmp-community",
			Usage:        "SNMP community for the snmp probe",
			EnvVars:      []string{"LABELINV_SNMP_COMMUNITY"},
			DefaultValue: "public",
			AssignTo:     &snmpCommunity,
		},
	}
}

func Load() *Config {
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	return &Config{
		ListenAddr:       listenAddr,
		APIAuthToken:     apiAuthToken,
		SeedFile:         seedFile,
		JournalDSN:       journalDSN,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		ProbeInterval:    time.Duration(probeInterval) * time.Second,
		ProbeTimeout:     time.Duration(probeTimeout) * time.Second,
		ProbeMode:        probeMode,
		ProbePorts:       probePorts,
		ProbeConcurrency: probeConcurrency,
		SNMPCommunity:    snmpCommunity,
	}
}

// IsAPIAuthEnabled checks if API authentication is configured
func (c *Config) IsAPIAuthEnabled() bool {
	return c.APIAuthToken != ""
}

// IsProbeEnabled checks if periodic status probing is configured
func (c *Config) IsProbeEnabled() bool {
	return c.ProbeInterval > 0
}

// Ports parses ProbePorts
func (c *Config) Ports() ([]int, error) {
	return ParsePorts(c.ProbePorts)
}

// ParsePorts parses a comma-separated port list. Blank entries are skipped.
func ParsePorts(s string) ([]int, error) {
	var ports []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		port, err := strconv.Atoi(item)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q", item)
		}
		ports = append(ports, port)
	}
	return ports, nil
}
