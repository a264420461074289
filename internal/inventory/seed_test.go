package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)
	require.NoError(t, seed.Validate())

	assert.Equal(t, []model.GlobalLabel{{ID: "1", Key: "environment"}, {ID: "2", Key: "region"}}, seed.Labels)
	require.Len(t, seed.Devices, 4)
	assert.Equal(t, "db-node-01", seed.Devices[1].Name)
	assert.Equal(t, model.StatusDown, seed.Devices[1].Status)
	assert.Equal(t, map[string]string{"environment": "prod", "region": "us-west"}, seed.Devices[1].Labels)
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
labels:
  - id: l1
    key: rack
devices:
  - id: d1
    name: sw-01
    ip: 10.0.0.2
    labels:
      rack: r1
      unused: ""
`), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Devices, 1)
	assert.Equal(t, model.StatusUp, seed.Devices[0].Status)

	s, err := NewFromSeed(seed)
	require.NoError(t, err)
	d, ok := s.Device("d1")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"rack": "r1"}, d.Labels)
}

func TestLoadSeed_Empty(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Len(t, seed.Labels, 2)
}

func TestLoadSeed_Missing(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("labels: [unterminated"))
	assert.Error(t, err)
}

func TestSeedValidate(t *testing.T) {
	seed := &Seed{
		Labels: []model.GlobalLabel{
			{ID: "1", Key: "env"},
			{ID: "1", Key: "env"},
			{ID: "3", Key: "Data Center"},
			{ID: "", Key: ""},
		},
		Devices: []model.Device{
			{ID: "a", Status: model.StatusUp},
			{ID: "a", Status: "sideways"},
		},
	}

	err := seed.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `labels[1]: duplicate id "1"`)
	assert.Contains(t, msg, `labels[1]: duplicate key "env"`)
	assert.Contains(t, msg, `expected "data_center"`)
	assert.Contains(t, msg, "labels[3]: id is required")
	assert.Contains(t, msg, "labels[3]: key is required")
	assert.Contains(t, msg, `devices[1]: duplicate id "a"`)
	assert.Contains(t, msg, `devices[1]: invalid status "sideways"`)

	_, err = NewFromSeed(seed)
	assert.Error(t, err)
}
