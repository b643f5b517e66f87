package search

import (
	"sort"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

// Filter is a client-side view over an already-fetched result set.
// Applying one never triggers a new request.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterOnline Filter = "online"
	FilterRecent Filter = "recent"
)

// ParseFilter maps user input to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterOnline, FilterRecent:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Apply returns a filtered copy of users; the input slice is not
// modified. FilterOnline keeps only users currently online. FilterRecent
// orders by join date, newest first, with dateless records at the end.
func Apply(users []models.User, f Filter) []models.User {
	switch f {
	case FilterOnline:
		out := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.IsOnline {
				out = append(out, u)
			}
		}
		return out
	case FilterRecent:
		out := make([]models.User, len(users))
		copy(out, users)
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].CreatedAt, out[j].CreatedAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
		return out
	default:
		out := make([]models.User, len(users))
		copy(out, users)
		return out
	}
}
