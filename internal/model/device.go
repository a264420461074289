package model

// Status is the reachability state of a device
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusUp || s == StatusDown
}

// Device represents a tracked network device
type Device struct {
	ID     string            `json:"id" yaml:"id"`
	Name   string            `json:"name" yaml:"name"`
	IP     string            `json:"ip" yaml:"ip"`
	Status Status            `json:"status" yaml:"status"`
	Labels map[string]string `json:"labels" yaml:"labels"`
}

// Clone returns a copy of the device that shares no label storage with d
func (d Device) Clone() Device {
	labels := make(map[string]string, len(d.Labels))
	for k, v := range d.Labels {
		labels[k] = v
	}
	d.Labels = labels
	return d
}

// DeviceInput is the caller-editable part of a device
type DeviceInput struct {
	Name   string            `json:"name"`
	IP     string            `json:"ip"`
	Labels map[string]string `json:"labels"`
}

// DeviceFilter holds filter criteria for listing devices
type DeviceFilter struct {
	Search string            // Case-insensitive match on name, IP, label keys and values
	Labels map[string]string // Exact label values, all must match
	Status Status            // Empty matches any status
}

// DeviceStats summarises device reachability
type DeviceStats struct {
	Total int `json:"total"`
	Up    int `json:"up"`
	Down  int `json:"down"`
}
