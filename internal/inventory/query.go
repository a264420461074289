package inventory

import (
	"slices"
	"strings"

	"github.com/martinsuchenak/labelinv/internal/model"
)

// Matches reports whether d satisfies every criterion in f
func Matches(d model.Device, f model.DeviceFilter) bool {
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	for k, v := range f.Labels {
		if got, ok := d.Labels[k]; !ok || got != v {
			return false
		}
	}

	query := strings.ToLower(strings.TrimSpace(f.Search))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(d.Name), query) || strings.Contains(d.IP, query) {
		return true
	}
	for k, v := range d.Labels {
		if strings.Contains(strings.ToLower(k), query) || strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// FilterDevices returns the devices matching f, keeping their order
func FilterDevices(devices []model.Device, f model.DeviceFilter) []model.Device {
	out := make([]model.Device, 0, len(devices))
	for _, d := range devices {
		if Matches(d, f) {
			out = append(out, d)
		}
	}
	return out
}

// CountStatus tallies devices by status
func CountStatus(devices []model.Device) model.DeviceStats {
	stats := model.DeviceStats{Total: len(devices)}
	for _, d := range devices {
		switch d.Status {
		case model.StatusUp:
			stats.Up++
		case model.StatusDown:
			stats.Down++
		}
	}
	return stats
}

// LabelUsage counts the devices that carry key
func LabelUsage(devices []model.Device, key string) int {
	n := 0
	for _, d := range devices {
		if _, ok := d.Labels[key]; ok {
			n++
		}
	}
	return n
}

// LabelValues returns the distinct non-empty values of key, sorted
func LabelValues(devices []model.Device, key string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, d := range devices {
		v := d.Labels[key]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// LabelUsages pairs every global label in snap with its device count
func LabelUsages(snap Snapshot) []model.LabelUsage {
	out := make([]model.LabelUsage, len(snap.Labels))
	for i, l := range snap.Labels {
		out[i] = model.LabelUsage{GlobalLabel: l, DeviceCount: LabelUsage(snap.Devices, l.Key)}
	}
	return out
}
