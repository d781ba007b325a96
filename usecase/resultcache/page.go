package resultcache

import (
	"sort"

	"github.com/zmfmock/server/domain"
)

// Page produces one page of the record list. When orderBy is non-empty the
// list is clone-sorted first: ascending, lexicographic string comparison,
// later fields breaking ties on earlier ones, stable for fully equal keys.
// A missing attribute compares as the empty string. The stored slice is
// never reordered.
func Page(records []domain.Record, index int, count *int, orderBy []string) []domain.Record {
	working := records
	if len(orderBy) > 0 {
		working = make([]domain.Record, len(records))
		copy(working, records)
		sort.SliceStable(working, func(i, j int) bool {
			for _, field := range orderBy {
				a, b := working[i].Field(field), working[j].Field(field)
				if a != b {
					return a < b
				}
			}
			return false
		})
	}

	if index <= 0 {
		index = 1
	}
	start := index - 1
	if start >= len(working) {
		return nil
	}

	end := len(working)
	// A non-positive count behaves like an absent one: read to the end.
	if count != nil && *count > 0 && start+*count < end {
		end = start + *count
	}
	return working[start:end]
}
