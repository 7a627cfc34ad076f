package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want StatusFilter
	}{
		{"Complete", StatusComplete},
		{"Incomplete", StatusIncomplete},
		{"", StatusAny},
		{"complete", StatusAny},
		{"Done", StatusAny},
		{"COMPLETE", StatusAny},
	}
	for _, tt := range tests {
		if got := Parse("", tt.in, "").Status; got != tt.want {
			t.Errorf("Parse status %q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"", SortTitleAsc},
		{"title_desc", SortTitleDesc},
		{"Date", SortDateAsc},
		{"date_desc", SortDateDesc},
		{"date", SortTitleAsc},
		{"bogus", SortTitleAsc},
	}
	for _, tt := range tests {
		if got := Parse("", "", tt.in).Sort; got != tt.want {
			t.Errorf("Parse sort %q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhereEmpty(t *testing.T) {
	where, args := Parse("", "", "").Where()
	if where != "" {
		t.Errorf("expected empty clause, got %q", where)
	}
	if args != nil {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestWhereSearch(t *testing.T) {
	where, args := Parse("milk", "", "").Where()
	want := " WHERE (title ILIKE $1 OR description ILIKE $1)"
	if where != want {
		t.Errorf("got %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{"%milk%"}) {
		t.Errorf("got args %v, want [%%milk%%]", args)
	}
}

func TestWhereStatus(t *testing.T) {
	where, args := Parse("", "Complete", "").Where()
	if where != " WHERE is_completed = TRUE" {
		t.Errorf("got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("status filter should carry no args, got %v", args)
	}

	where, _ = Parse("", "Incomplete", "").Where()
	if where != " WHERE is_completed = FALSE" {
		t.Errorf("got %q", where)
	}
}

func TestWhereSearchAndStatus(t *testing.T) {
	where, args := Parse("milk", "Incomplete", "").Where()
	want := " WHERE (title ILIKE $1 OR description ILIKE $1) AND is_completed = FALSE"
	if where != want {
		t.Errorf("got %q, want %q", where, want)
	}
	if len(args) != 1 {
		t.Errorf("got %d args, want 1", len(args))
	}
}

// An unrecognized status must compose the same query as no status at all.
func TestUnknownStatusIsNoop(t *testing.T) {
	for _, status := range []string{"", "Done", "complete", "true", "1"} {
		gotWhere, gotArgs := Parse("x", status, "").Where()
		wantWhere, wantArgs := Parse("x", "", "").Where()
		if gotWhere != wantWhere || !reflect.DeepEqual(gotArgs, wantArgs) {
			t.Errorf("status %q altered the query: %q vs %q", status, gotWhere, wantWhere)
		}
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{"", " ORDER BY title ASC, id ASC"},
		{"title_desc", " ORDER BY title DESC, id ASC"},
		{"Date", " ORDER BY due_date ASC, id ASC"},
		{"date_desc", " ORDER BY due_date DESC, id ASC"},
		{"garbage", " ORDER BY title ASC, id ASC"},
	}
	for _, tt := range tests {
		if got := Parse("", "", tt.sort).OrderBy(); got != tt.want {
			t.Errorf("sort %q: got %q, want %q", tt.sort, got, tt.want)
		}
	}
}

// Ties must break on id so pagination is deterministic across requests.
func TestOrderByAlwaysCarriesTiebreaker(t *testing.T) {
	for _, sort := range []string{"", "title_desc", "Date", "date_desc", "junk"} {
		order := Parse("", "", sort).OrderBy()
		if !strings.HasSuffix(order, "id ASC") {
			t.Errorf("sort %q: order %q lacks id tiebreaker", sort, order)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
