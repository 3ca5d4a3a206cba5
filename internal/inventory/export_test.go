package inventory

import (
	"bytes"
	"context"
	"testing"
)

func TestEscapeCSVField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"has space", "has space"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{`,"`, `","""`},
	}

	for _, tt := range tests {
		if got := escapeCSVField(tt.in); got != tt.want {
			t.Errorf("escapeCSVField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	mustCreate(t, s, ProductInput{Name: "Apple", Unit: strPtr("kg"), Stock: intPtr(5)})
	mustCreate(t, s, ProductInput{Name: `Choc, "Dark"`, Stock: intPtr(0)})

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	want := "id,name,unit,category,brand,stock,status,image\n" +
		"1,Apple,kg,,,5,In Stock,\n" +
		"2,\"Choc, \"\"Dark\"\"\",,,,0,Out of Stock,\n"
	if got := buf.String(); got != want {
		t.Errorf("export output:\n%q\nwant:\n%q", got, want)
	}
}

func TestExportCSV_EmptyCatalog(t *testing.T) {
	s := newTestService(t)

	var buf bytes.Buffer
	if err := s.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := buf.String(); got != exportHeader+"\n" {
		t.Errorf("got %q, want header only", got)
	}
}
