package apifeatures

import (
	"net/url"
	"reflect"
	"testing"
)

var tourColumns = Whitelist{
	Filter: []string{"duration", "difficulty", "price", "ratings_average"},
	Sort:   []string{"name", "price", "ratings_average", "created_at"},
	Fields: []string{"id", "name", "price", "summary"},
}

func TestParseFilter_OperatorSuffixes(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   []Condition
	}{
		{
			name:   "range operator",
			params: url.Values{"price[gte]": {"100"}},
			want:   []Condition{{Column: "price", Op: ">=", Value: "100"}},
		},
		{
			name:   "equality",
			params: url.Values{"difficulty": {"easy"}},
			want:   []Condition{{Column: "difficulty", Op: "=", Value: "easy"}},
		},
		{
			name: "mixed, ordered by key",
			params: url.Values{
				"price[lt]":       {"500"},
				"duration[gte]":   {"5"},
				"ratings_average": {"4.5"},
			},
			want: []Condition{
				{Column: "duration", Op: ">=", Value: "5"},
				{Column: "price", Op: "<", Value: "500"},
				{Column: "ratings_average", Op: "=", Value: "4.5"},
			},
		},
		{
			name:   "reserved keys dropped",
			params: url.Values{"page": {"2"}, "sort": {"-price"}, "limit": {"5"}, "fields": {"name"}},
			want:   nil,
		},
		{
			name:   "unknown column dropped",
			params: url.Values{"password_hash[gte]": {"x"}, "secret_tour": {"true"}},
			want:   nil,
		},
		{
			name:   "unknown operator treated as opaque key and dropped",
			params: url.Values{"price[like]": {"100"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilter(tt.params, tourColumns.Filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"default newest first", "", []string{"created_at DESC"}},
		{"descending then ascending", "-price,name", []string{"price DESC", "name ASC"}},
		{"unknown fields ignored", "-price,password_hash", []string{"price DESC"}},
		{"all unknown falls back to default", "password_hash", []string{"created_at DESC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.raw, tourColumns.Sort)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSort(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	got := ParseFields("name,price,password_hash", tourColumns.Fields)
	want := []string{"name", "price"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFields() = %v, want %v", got, want)
	}

	if got := ParseFields("", tourColumns.Fields); got != nil {
		t.Errorf("empty projection should mean default, got %v", got)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", "", 0, 100},
		{"page two of five", "2", "5", 5, 5},
		{"malformed falls back", "abc", "-3", 0, 100},
		{"zero page falls back", "0", "10", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := ParsePagination(tt.page, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("ParsePagination(%q, %q) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

// The shaping round-trip: price[gte]=100 sorted by -price,name with
// limit 5 page 2 must filter price >= 100, order price DESC then name
// ASC, and request records 6-10.
func TestShapingRoundTrip(t *testing.T) {
	params := url.Values{
		"price[gte]": {"100"},
		"sort":       {"-price,name"},
		"limit":      {"5"},
		"page":       {"2"},
	}

	conds := ParseFilter(params, tourColumns.Filter)
	if len(conds) != 1 || conds[0] != (Condition{Column: "price", Op: ">=", Value: "100"}) {
		t.Errorf("filter = %v, want price >= 100", conds)
	}

	orders := ParseSort(params.Get("sort"), tourColumns.Sort)
	if !reflect.DeepEqual(orders, []string{"price DESC", "name ASC"}) {
		t.Errorf("sort = %v, want [price DESC, name ASC]", orders)
	}

	offset, limit := ParsePagination(params.Get("page"), params.Get("limit"))
	if offset != 5 || limit != 5 {
		t.Errorf("pagination = (%d, %d), want records 6-10 (offset 5, limit 5)", offset, limit)
	}
}
