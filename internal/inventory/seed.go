package inventory

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/martinsuchenak/labelinv/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the bootstrap dataset a store starts from
type Seed struct {
	Labels  []model.GlobalLabel `yaml:"labels"`
	Devices []model.Device      `yaml:"devices"`
}

// DefaultSeed returns the built-in dataset
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed file, or the built-in dataset when path is empty
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed. Devices without a status default to up.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for i := range seed.Devices {
		if seed.Devices[i].Status == "" {
			seed.Devices[i].Status = model.StatusUp
		}
	}
	return &seed, nil
}

// Validate reports every way the seed would break the store invariants
func (s *Seed) Validate() error {
	var errs []error

	labelIDs := make(map[string]bool, len(s.Labels))
	keys := make(map[string]bool, len(s.Labels))
	for i, l := range s.Labels {
		switch {
		case l.ID == "":
			errs = append(errs, fmt.Errorf("labels[%d]: id is required", i))
		case labelIDs[l.ID]:
			errs = append(errs, fmt.Errorf("labels[%d]: duplicate id %q", i, l.ID))
		}
		labelIDs[l.ID] = true

		switch {
		case l.Key == "":
			errs = append(errs, fmt.Errorf("labels[%d]: key is required", i))
		case NormalizeKey(l.Key) != l.Key:
			errs = append(errs, fmt.Errorf("labels[%d]: key %q is not normalized, expected %q", i, l.Key, NormalizeKey(l.Key)))
		case keys[l.Key]:
			errs = append(errs, fmt.Errorf("labels[%d]: duplicate key %q", i, l.Key))
		}
		keys[l.Key] = true
	}

	deviceIDs := make(map[string]bool, len(s.Devices))
	for i, d := range s.Devices {
		switch {
		case d.ID == "":
			errs = append(errs, fmt.Errorf("devices[%d]: id is required", i))
		case deviceIDs[d.ID]:
			errs = append(errs, fmt.Errorf("devices[%d]: duplicate id %q", i, d.ID))
		}
		deviceIDs[d.ID] = true

		if !d.Status.Valid() {
			errs = append(errs, fmt.Errorf("devices[%d]: invalid status %q", i, d.Status))
		}
	}

	return errors.Join(errs...)
}

// NewFromSeed returns a store holding the seed data. Empty label values in
// the seed are stripped.
func NewFromSeed(seed *Seed) (*Store, error) {
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	s := New()
	s.labels = make([]model.GlobalLabel, len(seed.Labels))
	copy(s.labels, seed.Labels)
	s.devices = make([]model.Device, len(seed.Devices))
	for i, d := range seed.Devices {
		d.Labels = cleanLabels(d.Labels)
		s.devices[i] = d
	}
	return s, nil
}
