// Package history keeps the persisted list of finished reading sessions and
// the filter/sort view over it.
package history

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/bethropolis/lectern/internal/script"
)

// SortKey selects the field history is ordered by.
type SortKey int

const (
	SortByDate SortKey = iota
	SortByTitle
)

func (k SortKey) String() string {
	if k == SortByTitle {
		return "title"
	}
	return "date"
}

// Toggle switches between date and title.
func (k SortKey) Toggle() SortKey {
	if k == SortByDate {
		return SortByTitle
	}
	return SortByDate
}

// ParseSortKey parses "date" or "title".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "created", "createdat":
		return SortByDate, nil
	case "title", "name":
		return SortByTitle, nil
	}
	return SortByDate, fmt.Errorf("unknown sort key %q", s)
}

// Direction is the sort order.
type Direction int

const (
	Desc Direction = iota
	Asc
)

func (d Direction) String() string {
	if d == Asc {
		return "asc"
	}
	return "desc"
}

// Reverse flips the direction.
func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseDirection parses "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return Desc, fmt.Errorf("unknown sort direction %q", s)
}

// Query describes the history view. The zero value lists everything,
// newest first.
type Query struct {
	Filter    string
	SortBy    SortKey
	Direction Direction
}

// Apply filters and sorts records into a fresh slice. The filter is a
// case-insensitive substring match against title or text; ties keep their
// input order. records is never modified.
func Apply(records []script.Script, q Query) []script.Script {
	out := make([]script.Script, 0, len(records))
	if q.Filter == "" {
		out = append(out, records...)
	} else {
		fold := cases.Fold()
		needle := fold.String(q.Filter)
		for _, r := range records {
			if strings.Contains(fold.String(r.Title), needle) || strings.Contains(fold.String(r.Text), needle) {
				out = append(out, r)
			}
		}
	}

	var cmp func(a, b script.Script) int
	switch q.SortBy {
	case SortByTitle:
		cmp = func(a, b script.Script) int { return strings.Compare(a.Title, b.Title) }
	default:
		cmp = func(a, b script.Script) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	if q.Direction == Desc {
		asc := cmp
		cmp = func(a, b script.Script) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}
