package state

import (
	"strings"

	"github.com/glabrego/crates-cli/internal/registry"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// MaxPage is the last page holding results: ceil(total/pageSize), never
// below 1 so an empty result set still has a current page.
func MaxPage(total, pageSize uint64) uint64 {
	if pageSize == 0 || total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func ClampPage(page, total, pageSize uint64) uint64 {
	if page < 1 {
		return 1
	}
	if max := MaxPage(total, pageSize); page > max {
		return max
	}
	return page
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// FilterCrates narrows a result page to crates matching every word of the
// prompt, case-insensitively, against name plus description. An empty
// prompt returns the slice unchanged.
func FilterCrates(crates []registry.Crate, prompt string) []registry.Crate {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) == 0 {
		return crates
	}
	out := make([]registry.Crate, 0, len(crates))
	for _, c := range crates {
		haystack := strings.ToLower(c.Name + " " + c.Description)
		matched := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, c)
		}
	}
	return out
}

func CrateIndexByName(crates []registry.Crate, name string) int {
	for i, c := range crates {
		if c.Name == name {
			return i
		}
	}
	return -1
}
