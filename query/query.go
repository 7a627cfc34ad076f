package query

import (
	"fmt"
	"strings"
)

// StatusFilter narrows a listing to completed or incomplete tasks.
type StatusFilter string

const (
	// StatusAny applies no completion filter.
	StatusAny StatusFilter = ""
	// StatusComplete keeps only completed tasks.
	StatusComplete StatusFilter = "Complete"
	// StatusIncomplete keeps only tasks not yet completed.
	StatusIncomplete StatusFilter = "Incomplete"
)

// SortKey selects the listing order.
type SortKey string

const (
	// SortTitleAsc is the default order, ascending by title.
	SortTitleAsc SortKey = ""
	// SortTitleDesc orders descending by title.
	SortTitleDesc SortKey = "title_desc"
	// SortDateAsc orders ascending by due date.
	SortDateAsc SortKey = "Date"
	// SortDateDesc orders descending by due date.
	SortDateDesc SortKey = "date_desc"
)

// Criteria is the composed listing query: a free-text search, a completion
// filter and a sort key. A single Criteria value is shared by the count and
// fetch passes so both observe the identical predicate.
//
// All inputs come straight from the query string. Unrecognized values
// degrade to the zero value instead of erroring; a malformed parameter must
// never break the listing.
type Criteria struct {
	Search string
	Status StatusFilter
	Sort   SortKey
}

// Parse builds Criteria from raw request parameters.
func Parse(search, status, sort string) Criteria {
	c := Criteria{Search: search}

	switch StatusFilter(status) {
	case StatusComplete, StatusIncomplete:
		c.Status = StatusFilter(status)
	}

	switch SortKey(sort) {
	case SortTitleDesc, SortDateAsc, SortDateDesc:
		c.Sort = SortKey(sort)
	}

	return c
}

// Where compiles the filter predicates into a SQL WHERE clause with
// positional arguments. Returns an empty clause when no filter applies.
// Search matches title or description, case-insensitive.
func (c Criteria) Where() (string, []any) {
	var conds []string
	var args []any

	if c.Search != "" {
		args = append(args, "%"+escapeLike(c.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	switch c.Status {
	case StatusComplete:
		conds = append(conds, "is_completed = TRUE")
	case StatusIncomplete:
		conds = append(conds, "is_completed = FALSE")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy compiles the sort key into a SQL ORDER BY clause. Every order
// carries a trailing id tiebreaker so pagination stays deterministic when
// sort keys collide.
func (c Criteria) OrderBy() string {
	switch c.Sort {
	case SortTitleDesc:
		return " ORDER BY title DESC, id ASC"
	case SortDateAsc:
		return " ORDER BY due_date ASC, id ASC"
	case SortDateDesc:
		return " ORDER BY due_date DESC, id ASC"
	default:
		return " ORDER BY title ASC, id ASC"
	}
}

// escapeLike neutralizes LIKE metacharacters in user input so a search for
// "50%" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
