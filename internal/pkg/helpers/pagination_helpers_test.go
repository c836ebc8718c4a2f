package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -5, 10, 0, 10},
		{"zero limit falls back to default", 2, 0, 10, DefaultLimit},
		{"limit above cap falls back to default", 1, 500, 0, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("got (%d, %d), want (%d, %d)", offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(25, 2, 10)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages for 25/10, got %d", meta.TotalPages)
	}
	if meta.Page != 2 || meta.Limit != 10 || meta.Total != 25 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestNewPaginationMetaEmptySet(t *testing.T) {
	meta := NewPaginationMeta(0, 1, 10)
	if meta.TotalPages != 0 {
		t.Fatalf("empty set must have 0 total pages, got %d", meta.TotalPages)
	}
}

func TestNewPaginationMetaNormalizesInput(t *testing.T) {
	meta := NewPaginationMeta(7, 0, -3)
	if meta.Page != DefaultPage || meta.Limit != DefaultLimit {
		t.Fatalf("expected normalized page/limit, got %+v", meta)
	}
	if meta.TotalPages != 1 {
		t.Fatalf("expected 1 total page for 7/%d, got %d", DefaultLimit, meta.TotalPages)
	}
}

func TestNewPaginationMetaCapsLimit(t *testing.T) {
	// Must normalize the same way CalculateOffsetLimit does, so the
	// reported totalPages matches the limit the query actually used.
	meta := NewPaginationMeta(250, 1, 500)
	_, queryLimit := CalculateOffsetLimit(1, 500)
	if meta.Limit != queryLimit {
		t.Fatalf("meta limit %d diverges from query limit %d", meta.Limit, queryLimit)
	}
	if meta.TotalPages != 25 {
		t.Fatalf("expected 25 total pages for 250/%d, got %d", DefaultLimit, meta.TotalPages)
	}
}
