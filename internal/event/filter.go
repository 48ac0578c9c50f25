package event

import (
	"slices"
	"strings"
)

// ParseTypeList splits a comma separated list of event types. Blank items
// are ignored. If a name is not a domain event type it is returned as
// unknown and the list is nil.
func ParseTypeList(param string) (types []string, unknown string) {
	if param == "" {
		return nil, ""
	}
	known := AllTypes()
	for _, raw := range strings.Split(param, ",") {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if !slices.Contains(known, Type(t)) {
			return nil, t
		}
		types = append(types, t)
	}
	return types, ""
}
