// Package apifeatures turns the flat query string of a list request into a
// filtered, sorted, projected and paginated database query. Each step is
// independently callable and chainable in any order.
package apifeatures

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
	DefaultSort  = "created_at DESC"
)

// Whitelist names the columns a client may filter, sort or project on.
// Everything else in the query string is ignored rather than rejected.
type Whitelist struct {
	Filter []string
	Sort   []string
	Fields []string
}

// Condition is one comparison extracted from the query string.
type Condition struct {
	Column string
	Op     string
	Value  string
}

var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

type Features struct {
	query  *gorm.DB
	params url.Values
	wl     Whitelist
}

func New(query *gorm.DB, params url.Values, wl Whitelist) *Features {
	return &Features{query: query, params: params, wl: wl}
}

func (f *Features) Filter() *Features {
	for _, cond := range ParseFilter(f.params, f.wl.Filter) {
		f.query = f.query.Where(fmt.Sprintf("%s %s ?", cond.Column, cond.Op), cond.Value)
	}
	return f
}

func (f *Features) Sort() *Features {
	for _, order := range ParseSort(f.params.Get("sort"), f.wl.Sort) {
		f.query = f.query.Order(order)
	}
	return f
}

func (f *Features) LimitFields() *Features {
	if fields := ParseFields(f.params.Get("fields"), f.wl.Fields); len(fields) > 0 {
		f.query = f.query.Select(fields)
	}
	return f
}

func (f *Features) Paginate() *Features {
	offset, limit := ParsePagination(f.params.Get("page"), f.params.Get("limit"))
	f.query = f.query.Offset(offset).Limit(limit)
	return f
}

func (f *Features) Query() *gorm.DB {
	return f.query
}

// ParseFilter extracts equality and range conditions. A key of the form
// column[gte] selects the matching comparison operator; a bare key is an
// equality test. Reserved keys and columns outside the whitelist are
// skipped.
func ParseFilter(params url.Values, allowed []string) []Condition {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conds []Condition
	for _, key := range keys {
		column, op := splitKey(key)
		if reserved[column] || !contains(allowed, column) {
			continue
		}
		for _, value := range params[key] {
			conds = append(conds, Condition{Column: column, Op: op, Value: value})
		}
	}
	return conds
}

// splitKey takes "price[gte]" apart into ("price", ">="); a key without an
// operator suffix becomes an equality.
func splitKey(key string) (column, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "="
	}

	column = key[:open]
	name := key[open+1 : len(key)-1]
	native, ok := operators[name]
	if !ok {
		return key, "="
	}
	return column, native
}

// ParseSort turns "-price,name" into ordered ORDER BY terms. A leading
// dash marks descending. Default is newest first.
func ParseSort(raw string, allowed []string) []string {
	if raw == "" {
		return []string{DefaultSort}
	}

	var orders []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = "DESC"
		}
		if field == "" || !contains(allowed, field) {
			continue
		}
		orders = append(orders, field+" "+direction)
	}

	if len(orders) == 0 {
		return []string{DefaultSort}
	}
	return orders
}

// ParseFields keeps the whitelisted subset of a "name,price" projection
// list. An empty result means the default projection.
func ParseFields(raw string, allowed []string) []string {
	if raw == "" {
		return nil
	}

	var fields []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || !contains(allowed, field) {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

// ParsePagination coerces page/limit with defaults 1 and 100; malformed or
// non-positive values fall back to the defaults instead of failing.
func ParsePagination(pageRaw, limitRaw string) (offset, limit int) {
	page := DefaultPage
	if n, err := strconv.Atoi(pageRaw); err == nil && n > 0 {
		page = n
	}

	limit = DefaultLimit
	if n, err := strconv.Atoi(limitRaw); err == nil && n > 0 {
		limit = n
	}

	return (page - 1) * limit, limit
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
