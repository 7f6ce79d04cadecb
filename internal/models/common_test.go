package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{"json array", `["Food","Drink"]`, StringList{"Food", "Drink"}},
		{"comma joined", `"Food,Drink"`, StringList{"Food", "Drink"}},
		{"comma joined with spaces", `"Food, Drink , Snack"`, StringList{"Food", "Drink", "Snack"}},
		{"single value", `"Food"`, StringList{"Food"}},
		{"empty string", `""`, nil},
		{"empty array", `[]`, StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringListUnmarshalRejectsOtherShapes(t *testing.T) {
	var got StringList
	if err := json.Unmarshal([]byte(`123`), &got); err == nil {
		t.Fatal("expected error for numeric input")
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
		total          int
		wantTotalPages int
	}{
		{"empty result still one page", 1, 20, 0, 1},
		{"exact fit", 1, 20, 40, 2},
		{"partial last page", 1, 20, 41, 3},
		{"single row", 1, 50, 1, 1},
		{"pageSize one", 3, 1, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize, tt.total)
			if p.TotalPages != tt.wantTotalPages {
				t.Fatalf("totalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Page != tt.page || p.PageSize != tt.pageSize || p.Total != tt.total {
				t.Fatalf("pagination echo mismatch: %+v", p)
			}
		})
	}
}
