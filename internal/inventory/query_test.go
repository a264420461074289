package inventory

import (
	"testing"

	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededDevices(t *testing.T) []model.Device {
	t.Helper()
	seed, err := DefaultSeed()
	require.NoError(t, err)
	s, err := NewFromSeed(seed)
	require.NoError(t, err)
	return s.Snapshot().Devices
}

func names(devices []model.Device) []string {
	out := make([]string, len(devices))
	for i, d := range devices {
		out[i] = d.Name
	}
	return out
}

func TestFilterDevices(t *testing.T) {
	devices := seededDevices(t)

	tests := []struct {
		name   string
		filter model.DeviceFilter
		want   []string
	}{
		{"empty filter", model.DeviceFilter{}, []string{"web-server-01", "db-node-01", "cache-server-01", "api-gateway-01"}},
		{"blank search", model.DeviceFilter{Search: "   "}, []string{"web-server-01", "db-node-01", "cache-server-01", "api-gateway-01"}},
		{"name case insensitive", model.DeviceFilter{Search: "DB-NODE"}, []string{"db-node-01"}},
		{"ip substring", model.DeviceFilter{Search: "1.30"}, []string{"cache-server-01"}},
		{"label value", model.DeviceFilter{Search: "staging"}, []string{"cache-server-01"}},
		{"label key", model.DeviceFilter{Search: "REGION"}, []string{"web-server-01", "db-node-01", "cache-server-01", "api-gateway-01"}},
		{"label exact", model.DeviceFilter{Labels: map[string]string{"region": "us-east"}}, []string{"web-server-01", "cache-server-01"}},
		{"labels and", model.DeviceFilter{Labels: map[string]string{"region": "us-east", "environment": "prod"}}, []string{"web-server-01"}},
		{"status", model.DeviceFilter{Status: model.StatusDown}, []string{"db-node-01"}},
		{"no match", model.DeviceFilter{Search: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterDevices(devices, tt.filter)))
		})
	}
}

func TestCountStatus(t *testing.T) {
	assert.Equal(t, model.DeviceStats{Total: 4, Up: 3, Down: 1}, CountStatus(seededDevices(t)))
	assert.Equal(t, model.DeviceStats{}, CountStatus(nil))
}

func TestLabelUsageAndValues(t *testing.T) {
	devices := seededDevices(t)

	assert.Equal(t, 4, LabelUsage(devices, "region"))
	assert.Equal(t, 0, LabelUsage(devices, "rack"))
	assert.Equal(t, []string{"eu-west", "us-east", "us-west"}, LabelValues(devices, "region"))
	assert.Equal(t, []string{}, LabelValues(devices, "rack"))
}

func TestLabelUsages(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddGlobalLabel("rack")
	require.NoError(t, err)

	usages := LabelUsages(s.Snapshot())
	require.Len(t, usages, 2)
	assert.Equal(t, "environment", usages[0].Key)
	assert.Equal(t, 1, usages[0].DeviceCount)
	assert.Equal(t, "rack", usages[1].Key)
	assert.Equal(t, 0, usages[1].DeviceCount)
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"environment":      "environment",
		"Env Type":         "env_type",
		"  Data \t Center": "data_center",
		"a\nb  c":          "a_b_c",
		"   ":              "",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKey(in), "input %q", in)
	}
}
