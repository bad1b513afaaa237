// Package icons maps resource icon hints onto the closed set of names the
// dashboard can actually render. Unknown hints fall back to DefaultIcon
// instead of being resolved dynamically.
package icons

import "strings"

// DefaultIcon is used whenever a configuration names an icon this registry
// does not know.
const DefaultIcon = "box"

var registry = map[string]bool{
	"box":       true,
	"briefcase": true,
	"calendar":  true,
	"car":       true,
	"clipboard": true,
	"globe":     true,
	"mic":       true,
	"star":      true,
	"tag":       true,
	"ticket":    true,
	"truck":     true,
	"users":     true,
	"wrench":    true,
}

// Resolve returns name if it is a supported icon, DefaultIcon otherwise.
// Matching is case-insensitive; the returned name is always lowercase.
func Resolve(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if registry[n] {
		return n
	}
	return DefaultIcon
}

// Known reports whether name is in the supported set.
func Known(name string) bool {
	return registry[strings.ToLower(strings.TrimSpace(name))]
}
