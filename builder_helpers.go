package pushover

import (
	"slices"
	"strings"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optionalText maps blank input to the unset value.
func optionalText(s string) string {
	if isBlank(s) {
		return ""
	}
	return s
}

func priorityPtr(p Priority) *Priority {
	return &p
}

func copyDevices(devices []string) []string {
	if devices == nil {
		return nil
	}
	return slices.Clone(devices)
}

// addDevice never writes into the backing array of devices, so builders
// forked from the same parent stay independent.
func addDevice(devices []string, name string) []string {
	if isBlank(name) || slices.Contains(devices, name) {
		return devices
	}

	out := make([]string, len(devices), len(devices)+1)
	copy(out, devices)
	return append(out, name)
}

func mergeDevices(devices, names []string) []string {
	for _, name := range names {
		devices = addDevice(devices, name)
	}
	return devices
}
