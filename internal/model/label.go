package model

// GlobalLabel is a schema-level label key available on every device
type GlobalLabel struct {
	ID  string `json:"id" yaml:"id"`
	Key string `json:"key" yaml:"key"`
}

// LabelUsage is a global label with the number of devices that carry it
type LabelUsage struct {
	GlobalLabel
	DeviceCount int `json:"device_count"`
}
