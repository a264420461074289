package device

import (
	"fmt"
	"sort"
	"strings"

	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		AddCommand(),
		ListCommand(),
		GetCommand(),
		UpdateCommand(),
		DeleteCommand(),
		SearchCommand(),
		StatsCommand(),
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseLabels turns "environment=prod,region=us-east" into a map. An entry
// with an empty value ("region=") is kept so callers can clear a label.
func parseLabels(s string) (map[string]string, error) {
	labels := make(map[string]string)
	for _, item := range parseList(s) {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid label %q, expected key=value", item)
		}
		labels[key] = strings.TrimSpace(value)
	}
	return labels, nil
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ", ")
}

func printDevices(devices []model.Device) {
	if len(devices) == 0 {
		fmt.Println("No devices found")
		return
	}
	for _, d := range devices {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.IP, d.Status, formatLabels(d.Labels))
	}
}

func printDevice(device *model.Device) {
	fmt.Printf("ID:      %s\n", device.ID)
	fmt.Printf("Name:    %s\n", device.Name)
	fmt.Printf("IP:      %s\n", device.IP)
	fmt.Printf("Status:  %s\n", device.Status)
	fmt.Printf("Labels:  %s\n", formatLabels(device.Labels))
}
