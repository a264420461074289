package scanner

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/martinsuchenak/labelinv/internal/inventory"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.ConfigureWriter("error", "console", io.Discard)
}

type fakeChecker struct {
	mu    sync.Mutex
	up    map[string]bool
	err   map[string]error
	calls []string
}

func (f *fakeChecker) Check(_ context.Context, ip string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ip)
	return f.up[ip], f.err[ip]
}

func newSeededStore(t *testing.T) *inventory.Store {
	t.Helper()
	seed, err := inventory.DefaultSeed()
	require.NoError(t, err)
	s, err := inventory.NewFromSeed(seed)
	require.NoError(t, err)
	return s
}

func statuses(s *inventory.Store) map[string]model.Status {
	out := map[string]model.Status{}
	for _, d := range s.Snapshot().Devices {
		out[d.Name] = d.Status
	}
	return out
}

func TestProbeOnce(t *testing.T) {
	s := newSeededStore(t)
	checker := &fakeChecker{
		up: map[string]bool{
			"192.168.1.10": true,
			"192.168.1.20": true,
		},
		err: map[string]error{
			"192.168.1.40": errors.New("boom"),
		},
	}

	p := NewProber(s, checker, time.Minute, 2)
	require.NoError(t, p.ProbeOnce(context.Background()))

	assert.Equal(t, map[string]model.Status{
		"web-server-01":   model.StatusUp,
		"db-node-01":      model.StatusUp,
		"cache-server-01": model.StatusDown,
		"api-gateway-01":  model.StatusDown,
	}, statuses(s))
	assert.Len(t, checker.calls, 4)
}

func TestProbeOnce_InvalidIPIsDown(t *testing.T) {
	s := inventory.New()
	d := s.AddDevice(model.DeviceInput{Name: "bad", IP: "not-an-ip"})
	checker := &fakeChecker{up: map[string]bool{"not-an-ip": true}}

	require.NoError(t, NewProber(s, checker, time.Minute, 1).ProbeOnce(context.Background()))

	got, _ := s.Device(d.ID)
	assert.Equal(t, model.StatusDown, got.Status)
	assert.Empty(t, checker.calls)
}

type deletingStore struct {
	*inventory.Store
}

func (d deletingStore) SetDeviceStatus(id string, status model.Status) error {
	d.Store.DeleteDevice(id)
	return d.Store.SetDeviceStatus(id, status)
}

func TestProbeOnce_IgnoresDeletedDevices(t *testing.T) {
	s := newSeededStore(t)
	p := NewProber(deletingStore{s}, &fakeChecker{}, time.Minute, 4)
	assert.NoError(t, p.ProbeOnce(context.Background()))
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newSeededStore(t)
	checker := &fakeChecker{up: map[string]bool{"192.168.1.20": true}}
	p := NewProber(s, checker, 10*time.Millisecond, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		return statuses(s)["db-node-01"] == model.StatusUp
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("prober did not stop")
	}
}

func TestTCPChecker(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	up, err := NewTCPChecker([]int{port}, time.Second).Check(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, up)

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedPort := closed.Addr().(*net.TCPAddr).Port
	closed.Close()

	up, err = NewTCPChecker([]int{closedPort}, time.Second).Check(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, up)
}

func TestTCPChecker_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	up, err := NewTCPChecker([]int{1}, time.Second).Check(ctx, "127.0.0.1")
	assert.False(t, up)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewChecker(t *testing.T) {
	for _, mode := range []string{"", ModePing, ModeTCP, ModeSNMP, ModeARP} {
		c, err := NewChecker(CheckerConfig{Mode: mode})
		require.NoError(t, err, mode)
		assert.NotNil(t, c)
	}

	_, err := NewChecker(CheckerConfig{Mode: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestARPChecker_InvalidAddress(t *testing.T) {
	up, err := NewARPChecker(time.Second).Check(context.Background(), "db-node-01")
	assert.False(t, up)
	assert.Error(t, err)
}
