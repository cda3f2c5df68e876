package checks

import (
	"fmt"
	"sort"
	"strings"
)

// Select returns the check called name. Configured checks shadow presets.
func Select(configured []Check, name string) (Check, error) {
	name = strings.TrimSpace(name)

	for _, c := range configured {
		if c.Name == name {
			return c, nil
		}
	}
	for _, c := range Presets() {
		if c.Name == name {
			return c, nil
		}
	}

	return Check{}, fmt.Errorf("%w: %q (known: %s)", ErrNotFound, name, strings.Join(Names(configured), ", "))
}

// Names lists configured and preset names, deduplicated and sorted.
func Names(configured []Check) []string {
	seen := map[string]bool{}
	out := []string{}

	for _, list := range [][]Check{configured, Presets()} {
		for _, c := range list {
			if c.Name == "" || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}

	sort.Strings(out)
	return out
}
