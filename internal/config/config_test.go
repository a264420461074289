package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorts(t *testing.T) {
	ports, err := ParsePorts(" 22, 443,,8080 ")
	require.NoError(t, err)
	assert.Equal(t, []int{22, 443, 8080}, ports)

	ports, err = ParsePorts("")
	require.NoError(t, err)
	assert.Empty(t, ports)

	for _, bad := range []string{"ssh", "0", "70000", "22,-1"} {
		_, err := ParsePorts(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad(t *testing.T) {
	listenAddr = ""
	probeInterval = 30
	probeTimeout = 3
	apiAuthToken = "secret"
	t.Cleanup(func() {
		probeInterval, probeTimeout, apiAuthToken = 0, 0, ""
	})

	cfg := Load()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.ProbeInterval)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.True(t, cfg.IsProbeEnabled())
	assert.True(t, cfg.IsAPIAuthEnabled())
}

func TestProbeDisabledByDefault(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.IsProbeEnabled())
	assert.False(t, cfg.IsAPIAuthEnabled())
}
