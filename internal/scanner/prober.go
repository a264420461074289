// Package scanner checks device reachability and reports it to the
// inventory as up/down status.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/martinsuchenak/labelinv/internal/inventory"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"golang.org/x/sync/errgroup"
)

// Check modes
const (
	ModePing = "ping"
	ModeTCP  = "tcp"
	ModeSNMP = "snmp"
	ModeARP  = "arp"
)

// Checker reports whether a single host is reachable
type Checker interface {
	Check(ctx context.Context, ip string) (bool, error)
}

// StatusStore is the part of the inventory the prober needs
type StatusStore interface {
	Snapshot() inventory.Snapshot
	SetDeviceStatus(id string, status model.Status) error
}

// CheckerConfig selects and tunes a Checker
type CheckerConfig struct {
	Mode          string
	Timeout       time.Duration
	Ports         []int
	SNMPCommunity string
}

// NewChecker builds the checker for cfg.Mode
func NewChecker(cfg CheckerConfig) (Checker, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	switch cfg.Mode {
	case ModePing, "":
		return NewPingChecker(cfg.Timeout, NewTCPChecker(cfg.Ports, cfg.Timeout)), nil
	case ModeTCP:
		return NewTCPChecker(cfg.Ports, cfg.Timeout), nil
	case ModeSNMP:
		return NewSNMPChecker(cfg.SNMPCommunity, 0, cfg.Timeout), nil
	case ModeARP:
		return NewARPChecker(cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown probe mode %q", cfg.Mode)
	}
}

// Prober periodically checks every device and records its status
type Prober struct {
	store       StatusStore
	checker     Checker
	interval    time.Duration
	concurrency int
}

// NewProber creates a prober. Concurrency below 1 means 1.
func NewProber(store StatusStore, checker Checker, interval time.Duration, concurrency int) *Prober {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Prober{
		store:       store,
		checker:     checker,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Run probes immediately and then on every interval until ctx is done
func (p *Prober) Run(ctx context.Context) error {
	log.Info("Status prober started", "interval", p.interval.String(), "concurrency", p.concurrency)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.ProbeOnce(ctx); err != nil && ctx.Err() == nil {
			log.Error("Probe round failed", "error", err)
		}
		select {
		case <-ctx.Done():
			log.Info("Status prober stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// ProbeOnce checks every device currently in the store
func (p *Prober) ProbeOnce(ctx context.Context) error {
	devices := p.store.Snapshot().Devices
	log.Debug("Probing devices", "count", len(devices))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, d := range devices {
		g.Go(func() error {
			status := p.probe(ctx, d)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := p.store.SetDeviceStatus(d.ID, status); err != nil {
				if errors.Is(err, inventory.ErrNotFound) {
					// Deleted while we were probing
					return nil
				}
				return fmt.Errorf("recording status of %s: %w", d.ID, err)
			}
			if status != d.Status {
				log.Info("Device status changed", "id", d.ID, "name", d.Name, "ip", d.IP, "status", status)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Prober) probe(ctx context.Context, d model.Device) model.Status {
	ip := net.ParseIP(d.IP)
	if ip == nil || ip.To4() == nil {
		log.Debug("Skipping device with invalid IP", "id", d.ID, "ip", d.IP)
		return model.StatusDown
	}

	up, err := p.checker.Check(ctx, d.IP)
	if err != nil {
		log.Debug("Check failed", "id", d.ID, "ip", d.IP, "error", err)
		return model.StatusDown
	}
	if up {
		return model.StatusUp
	}
	return model.StatusDown
}
