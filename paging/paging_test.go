package paging

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// sliceFuncs builds count/fetch closures over an in-memory ordered slice.
func sliceFuncs(items []string) (CountFunc, FetchFunc[string]) {
	count := func(ctx context.Context) (int, error) {
		return len(items), nil
	}
	fetch := func(ctx context.Context, offset, limit int) ([]string, error) {
		if offset >= len(items) {
			return nil, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		return items[offset:end], nil
	}
	return count, fetch
}

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("task-%02d", i+1)
	}
	return items
}

func TestPaginateTwelveItems(t *testing.T) {
	count, fetch := sliceFuncs(numbered(12))
	ctx := context.Background()

	p1, err := Paginate(ctx, 1, 5, count, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p1.Items) != 5 {
		t.Errorf("page 1: got %d items, want 5", len(p1.Items))
	}
	if p1.Items[0] != "task-01" || p1.Items[4] != "task-05" {
		t.Errorf("page 1 window wrong: %v", p1.Items)
	}
	if p1.TotalPages != 3 || p1.TotalCount != 12 {
		t.Errorf("page 1 metadata wrong: pages=%d count=%d", p1.TotalPages, p1.TotalCount)
	}
	if p1.HasPrevious || !p1.HasNext {
		t.Errorf("page 1 navigation wrong: prev=%v next=%v", p1.HasPrevious, p1.HasNext)
	}

	p3, err := Paginate(ctx, 3, 5, count, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p3.Items) != 2 {
		t.Errorf("page 3: got %d items, want 2", len(p3.Items))
	}
	if !p3.HasPrevious || p3.HasNext {
		t.Errorf("page 3 navigation wrong: prev=%v next=%v", p3.HasPrevious, p3.HasNext)
	}
}

// A page number beyond the last page yields empty items with correct
// metadata, not an error and not a clamp.
func TestPaginateBeyondLastPage(t *testing.T) {
	count, fetch := sliceFuncs(numbered(12))

	p, err := Paginate(context.Background(), 9, 5, count, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Items) != 0 {
		t.Errorf("got %d items, want 0", len(p.Items))
	}
	if p.Items == nil {
		t.Error("items should be an empty slice, not nil")
	}
	if p.PageIndex != 9 {
		t.Errorf("page index clamped to %d, should stay 9", p.PageIndex)
	}
	if p.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", p.TotalPages)
	}
	if p.HasNext {
		t.Error("has_next should be false beyond the last page")
	}
	if !p.HasPrevious {
		t.Error("has_previous should be true beyond the last page")
	}
}

func TestPaginateClampsLowPageNumbers(t *testing.T) {
	count, fetch := sliceFuncs(numbered(3))

	for _, page := range []int{0, -1, -100} {
		p, err := Paginate(context.Background(), page, 5, count, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.PageIndex != 1 {
			t.Errorf("page %d: index = %d, want 1", page, p.PageIndex)
		}
		if len(p.Items) != 3 {
			t.Errorf("page %d: got %d items, want 3", page, len(p.Items))
		}
	}
}

func TestPaginateEmptySet(t *testing.T) {
	count, fetch := sliceFuncs(nil)

	p, err := Paginate(context.Background(), 1, 5, count, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalPages != 0 || p.TotalCount != 0 {
		t.Errorf("empty set metadata wrong: pages=%d count=%d", p.TotalPages, p.TotalCount)
	}
	if p.HasPrevious || p.HasNext {
		t.Error("empty set should have no navigation")
	}
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("items should be an empty slice, got %v", p.Items)
	}
}

func TestPaginateDefaultsPageSize(t *testing.T) {
	count, fetch := sliceFuncs(numbered(7))

	p, err := Paginate(context.Background(), 1, 0, count, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Items) != DefaultPageSize {
		t.Errorf("got %d items, want %d", len(p.Items), DefaultPageSize)
	}
	if p.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", p.TotalPages)
	}
}

func TestPaginateCountError(t *testing.T) {
	wantErr := errors.New("count failed")
	count := func(ctx context.Context) (int, error) { return 0, wantErr }
	_, fetch := sliceFuncs(nil)

	_, err := Paginate(context.Background(), 1, 5, count, fetch)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped count error", err)
	}
}

func TestPaginateFetchError(t *testing.T) {
	wantErr := errors.New("fetch failed")
	count, _ := sliceFuncs(numbered(3))
	fetch := func(ctx context.Context, offset, limit int) ([]string, error) {
		return nil, wantErr
	}

	_, err := Paginate(context.Background(), 1, 5, count, fetch)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped fetch error", err)
	}
}
