// Package inventory owns the device and global label collections and keeps
// them consistent: label renames and deletes cascade into every device.
package inventory

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/martinsuchenak/labelinv/internal/model"
)

// Op names a mutation in a Change
type Op string

const (
	OpAddDevice       Op = "add_device"
	OpUpdateDevice    Op = "update_device"
	OpDeleteDevice    Op = "delete_device"
	OpSetDeviceStatus Op = "set_device_status"
	OpAddLabel        Op = "add_label"
	OpUpdateLabel     Op = "update_label"
	OpDeleteLabel     Op = "delete_label"
)

// Snapshot is a deep copy of the store contents. Both slices are in
// insertion order.
type Snapshot struct {
	Version uint64              `json:"version"`
	Devices []model.Device      `json:"devices"`
	Labels  []model.GlobalLabel `json:"labels"`
}

// Change describes one applied mutation and the state it produced
type Change struct {
	Op       Op
	TargetID string
	Snapshot Snapshot
}

type observer struct {
	id int
	fn func(Change)
}

// Store is the authoritative in-memory inventory.
//
// Mutations are serialized. Observers are called synchronously after each
// applied mutation, in commit order; they may read the store but must not
// mutate it.
type Store struct {
	mu       sync.RWMutex
	notifyMu sync.Mutex

	devices []model.Device
	labels  []model.GlobalLabel
	version uint64

	observers    []observer
	nextObserver int

	newID func() string
}

// New returns an empty store
func New() *Store {
	return &Store{newID: generateID}
}

// generateID generates a UUIDv7
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Subscribe registers fn to receive every applied change. The returned
// function removes the registration.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextObserver++
	id := s.nextObserver
	s.observers = append(s.observers, observer{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
		})
	}
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version: s.version,
		Devices: make([]model.Device, len(s.devices)),
		Labels:  slices.Clone(s.labels),
	}
	for i, d := range s.devices {
		snap.Devices[i] = d.Clone()
	}
	if snap.Labels == nil {
		snap.Labels = []model.GlobalLabel{}
	}
	return snap
}

// Device returns a copy of the device with the given id
func (s *Store) Device(id string) (model.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.deviceIndex(id); i >= 0 {
		return s.devices[i].Clone(), true
	}
	return model.Device{}, false
}

// GlobalLabel returns the label with the given id
func (s *Store) GlobalLabel(id string) (model.GlobalLabel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.labelIndex(id); i >= 0 {
		return s.labels[i], true
	}
	return model.GlobalLabel{}, false
}

// AddDevice creates a device with a fresh id and status up
func (s *Store) AddDevice(in model.DeviceInput) model.Device {
	var created model.Device
	s.mutate(func() (Change, error) {
		created = model.Device{
			ID:     s.uniqueDeviceID(),
			Name:   in.Name,
			IP:     in.IP,
			Status: model.StatusUp,
			Labels: cleanLabels(in.Labels),
		}
		s.devices = append(slices.Clip(s.devices), created)
		return Change{Op: OpAddDevice, TargetID: created.ID}, nil
	})
	return created.Clone()
}

// UpdateDevice replaces name, IP and labels of an existing device. ID and
// status are never touched.
func (s *Store) UpdateDevice(id string, in model.DeviceInput) error {
	return s.mutate(func() (Change, error) {
		i := s.deviceIndex(id)
		if i < 0 {
			return Change{}, reject(ReasonNotFound, id)
		}
		updated := s.devices[i]
		updated.Name = in.Name
		updated.IP = in.IP
		updated.Labels = cleanLabels(in.Labels)

		devices := slices.Clone(s.devices)
		devices[i] = updated
		s.devices = devices
		return Change{Op: OpUpdateDevice, TargetID: id}, nil
	})
}

// DeleteDevice removes a device
func (s *Store) DeleteDevice(id string) error {
	return s.mutate(func() (Change, error) {
		i := s.deviceIndex(id)
		if i < 0 {
			return Change{}, reject(ReasonNotFound, id)
		}
		s.devices = slices.Delete(slices.Clone(s.devices), i, i+1)
		return Change{Op: OpDeleteDevice, TargetID: id}, nil
	})
}

// SetDeviceStatus records the reachability of a device. Setting the status
// it already has is applied but produces no change notification.
func (s *Store) SetDeviceStatus(id string, status model.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.mutate(func() (Change, error) {
		i := s.deviceIndex(id)
		if i < 0 {
			return Change{}, reject(ReasonNotFound, id)
		}
		if s.devices[i].Status == status {
			return Change{}, nil
		}
		devices := slices.Clone(s.devices)
		devices[i].Status = status
		s.devices = devices
		return Change{Op: OpSetDeviceStatus, TargetID: id}, nil
	})
}

// AddGlobalLabel creates a label from the normalized form of rawKey
func (s *Store) AddGlobalLabel(rawKey string) (model.GlobalLabel, error) {
	var created model.GlobalLabel
	err := s.mutate(func() (Change, error) {
		key := NormalizeKey(rawKey)
		if key == "" {
			return Change{}, reject(ReasonEmptyKey, rawKey)
		}
		if s.labelKeyIndex(key) >= 0 {
			return Change{}, reject(ReasonDuplicateKey, key)
		}
		created = model.GlobalLabel{ID: s.uniqueLabelID(), Key: key}
		s.labels = append(slices.Clip(s.labels), created)
		return Change{Op: OpAddLabel, TargetID: created.ID}, nil
	})
	if err != nil {
		return model.GlobalLabel{}, err
	}
	return created, nil
}

// UpdateGlobalLabel renames a label and moves every device value stored
// under the old key to the new one. Renaming onto the key of another label
// is rejected with ReasonDuplicateKey.
func (s *Store) UpdateGlobalLabel(id, newRawKey string) error {
	return s.mutate(func() (Change, error) {
		i := s.labelIndex(id)
		if i < 0 {
			return Change{}, reject(ReasonNotFound, id)
		}
		key := NormalizeKey(newRawKey)
		if key == "" {
			return Change{}, reject(ReasonEmptyKey, newRawKey)
		}
		if j := s.labelKeyIndex(key); j >= 0 && j != i {
			return Change{}, reject(ReasonDuplicateKey, key)
		}
		oldKey := s.labels[i].Key
		if oldKey == key {
			return Change{}, nil
		}

		labels := slices.Clone(s.labels)
		labels[i].Key = key

		devices := make([]model.Device, len(s.devices))
		for n, d := range s.devices {
			value, ok := d.Labels[oldKey]
			if !ok {
				devices[n] = d
				continue
			}
			moved := d.Clone()
			delete(moved.Labels, oldKey)
			moved.Labels[key] = value
			devices[n] = moved
		}

		s.labels, s.devices = labels, devices
		return Change{Op: OpUpdateLabel, TargetID: id}, nil
	})
}

// DeleteGlobalLabel removes a label and strips its key from every device
func (s *Store) DeleteGlobalLabel(id string) error {
	return s.mutate(func() (Change, error) {
		i := s.labelIndex(id)
		if i < 0 {
			return Change{}, reject(ReasonNotFound, id)
		}
		key := s.labels[i].Key

		devices := make([]model.Device, len(s.devices))
		for n, d := range s.devices {
			if _, ok := d.Labels[key]; !ok {
				devices[n] = d
				continue
			}
			stripped := d.Clone()
			delete(stripped.Labels, key)
			devices[n] = stripped
		}

		s.labels = slices.Delete(slices.Clone(s.labels), i, i+1)
		s.devices = devices
		return Change{Op: OpDeleteLabel, TargetID: id}, nil
	})
}

// mutate runs fn under the write lock. A Change with an empty Op means the
// call was applied without altering state, so nobody is notified. Stored
// devices are never modified in place: fn must build replacement slices.
func (s *Store) mutate(fn func() (Change, error)) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	change, err := fn()
	if err != nil || change.Op == "" {
		s.mu.Unlock()
		return err
	}
	s.version++
	observers := slices.Clone(s.observers)
	if len(observers) > 0 {
		change.Snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(change)
	}
	return nil
}

func (s *Store) deviceIndex(id string) int {
	return slices.IndexFunc(s.devices, func(d model.Device) bool { return d.ID == id })
}

func (s *Store) labelIndex(id string) int {
	return slices.IndexFunc(s.labels, func(l model.GlobalLabel) bool { return l.ID == id })
}

func (s *Store) labelKeyIndex(key string) int {
	return slices.IndexFunc(s.labels, func(l model.GlobalLabel) bool { return l.Key == key })
}

func (s *Store) uniqueDeviceID() string {
	for {
		if id := s.newID(); s.deviceIndex(id) < 0 {
			return id
		}
	}
}

func (s *Store) uniqueLabelID() string {
	for {
		if id := s.newID(); s.labelIndex(id) < 0 {
			return id
		}
	}
}
