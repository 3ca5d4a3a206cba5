package inventory

import "testing"

func TestBuildListQuery_Defaults(t *testing.T) {
	q := buildListQuery(ListParams{})

	if q.where != "" {
		t.Errorf("where = %q, want empty", q.where)
	}
	if q.sortBy != "id" {
		t.Errorf("sortBy = %q, want %q", q.sortBy, "id")
	}
	if q.order != "ASC" {
		t.Errorf("order = %q, want %q", q.order, "ASC")
	}
	if q.page != 1 || q.limit != 10 || q.offset != 0 {
		t.Errorf("page/limit/offset = %d/%d/%d, want 1/10/0", q.page, q.limit, q.offset)
	}

	wantSelect := "SELECT id, name, unit, category, brand, stock, status, image FROM products ORDER BY id ASC LIMIT ? OFFSET ?"
	if got := q.selectSQL(); got != wantSelect {
		t.Errorf("selectSQL() = %q, want %q", got, wantSelect)
	}
	wantCount := "SELECT COUNT(*) FROM products"
	if got := q.countSQL(); got != wantCount {
		t.Errorf("countSQL() = %q, want %q", got, wantCount)
	}
}

func TestBuildListQuery_Filters(t *testing.T) {
	q := buildListQuery(ListParams{Name: "Wid", Category: "Tools"})

	if q.where != " WHERE LOWER(name) LIKE ? AND category = ?" {
		t.Errorf("where = %q", q.where)
	}
	if len(q.args) != 2 {
		t.Fatalf("len(args) = %d, want 2", len(q.args))
	}
	if q.args[0] != "%wid%" {
		t.Errorf("args[0] = %v, want %q", q.args[0], "%wid%")
	}
	if q.args[1] != "Tools" {
		t.Errorf("args[1] = %v, want %q", q.args[1], "Tools")
	}
}

func TestBuildListQuery_SortAllowList(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{"name", "name"},
		{"stock", "stock"},
		{"status", "status"},
		{"", "id"},
		{"created_at", "id"},
		{"name; DROP TABLE products", "id"},
		{"NAME", "id"}, // allow-list membership is exact
	}

	for _, tt := range tests {
		q := buildListQuery(ListParams{SortBy: tt.sortBy})
		if q.sortBy != tt.want {
			t.Errorf("sortBy %q: got %q, want %q", tt.sortBy, q.sortBy, tt.want)
		}
	}
}

func TestBuildListQuery_SortOrder(t *testing.T) {
	tests := []struct {
		order string
		want  string
	}{
		{"DESC", "DESC"},
		{"desc", "DESC"},
		{"Desc", "DESC"},
		{"ASC", "ASC"},
		{"", "ASC"},
		{"descending", "ASC"},
		{"1; DELETE FROM products", "ASC"},
	}

	for _, tt := range tests {
		q := buildListQuery(ListParams{SortOrder: tt.order})
		if q.order != tt.want {
			t.Errorf("sortOrder %q: got %q, want %q", tt.order, q.order, tt.want)
		}
	}
}

func TestBuildListQuery_Pagination(t *testing.T) {
	q := buildListQuery(ListParams{Page: "3", Limit: "20"})
	if q.page != 3 || q.limit != 20 || q.offset != 40 {
		t.Errorf("page/limit/offset = %d/%d/%d, want 3/20/40", q.page, q.limit, q.offset)
	}

	// Non-numeric and non-positive collapse to defaults, not errors.
	for _, bad := range []string{"abc", "1.5", "0", "-3", ""} {
		q := buildListQuery(ListParams{Page: bad, Limit: bad})
		if q.page != 1 || q.limit != 10 {
			t.Errorf("page/limit %q: got %d/%d, want 1/10", bad, q.page, q.limit)
		}
	}
}

func TestComputePagination(t *testing.T) {
	tests := []struct {
		page, limit, total int
		totalPages         int
		hasNext, hasPrev   bool
	}{
		{1, 10, 0, 0, false, false},
		{1, 10, 5, 1, false, false},
		{1, 10, 35, 4, true, false},
		{2, 10, 35, 4, true, true},
		{4, 10, 35, 4, false, true},
		{99, 10, 35, 4, false, true},
		{1, 100, 35, 1, false, false},
	}

	for _, tt := range tests {
		p := computePagination(tt.page, tt.limit, tt.total)
		if p.TotalPages != tt.totalPages {
			t.Errorf("page %d limit %d total %d: TotalPages = %d, want %d",
				tt.page, tt.limit, tt.total, p.TotalPages, tt.totalPages)
		}
		if p.HasNext != tt.hasNext {
			t.Errorf("page %d limit %d total %d: HasNext = %v, want %v",
				tt.page, tt.limit, tt.total, p.HasNext, tt.hasNext)
		}
		if p.HasPrev != tt.hasPrev {
			t.Errorf("page %d limit %d total %d: HasPrev = %v, want %v",
				tt.page, tt.limit, tt.total, p.HasPrev, tt.hasPrev)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	if got := DeriveStatus(5); got != StatusInStock {
		t.Errorf("DeriveStatus(5) = %q, want %q", got, StatusInStock)
	}
	if got := DeriveStatus(0); got != StatusOutOfStock {
		t.Errorf("DeriveStatus(0) = %q, want %q", got, StatusOutOfStock)
	}
	if got := DeriveStatus(-1); got != StatusOutOfStock {
		t.Errorf("DeriveStatus(-1) = %q, want %q", got, StatusOutOfStock)
	}
}
