package tasklist

import "strings"

// Filter selects which tasks are shown. It is never sent to the server.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

var filters = []Filter{FilterAll, FilterCompleted, FilterPending}

// ParseFilter maps a config or flag value to a Filter. Unknown values mean
// FilterAll.
func ParseFilter(s string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range filters {
		if f == known {
			return f
		}
	}
	return FilterAll
}

// Match reports whether a task with the given completed flag is visible.
func (f Filter) Match(completed bool) bool {
	switch f {
	case FilterCompleted:
		return completed
	case FilterPending:
		return !completed
	default:
		return true
	}
}

// Next cycles all → completed → pending → all.
func (f Filter) Next() Filter {
	for i, known := range filters {
		if f == known {
			return filters[(i+1)%len(filters)]
		}
	}
	return FilterAll
}
