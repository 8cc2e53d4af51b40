// Package query translates list-endpoint query parameters into SQL fragments.
//
// Filter keys are parsed structurally: "field=v" is an equality predicate,
// "field[gte]=v" a comparison, "field[in]=a,b" a membership test. Field names
// are resolved against a caller-supplied whitelist of exposed columns, so an
// unknown field is rejected instead of being interpolated into SQL.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bootcampfinder/backend/internal/apperr"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// ColumnSet maps exposed API field names to SQL column expressions
type ColumnSet map[string]string

// Op is a filter comparison operator
type Op string

// Supported operators
const (
	OpEq  Op = "="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "IN"
)

var operators = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Parameters reserved for result shaping, stripped before filter parsing
var reservedParams = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

var filterKeyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)(?:\[([a-z]+)\])?$`)

// Filter is a single predicate against one column
type Filter struct {
	Column string
	Op     Op
	Values []string
}

// SortKey is a single ordering key
type SortKey struct {
	Column string
	Desc   bool
}

// Options is the parsed shape of a list request
type Options struct {
	// Fields holds the selected API field names; empty means all fields
	Fields  []string
	Filters []Filter
	Sort    []SortKey
	Page    int
	Limit   int
}

// Parse builds Options from raw query parameters. Field names in filters,
// select and sort must appear in cols; anything else is a validation error.
func Parse(values url.Values, cols ColumnSet) (*Options, error) {
	opts := &Options{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if sel := values.Get("select"); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if _, ok := cols[field]; !ok {
				return nil, apperr.Validation("select", fmt.Sprintf("unknown field %q", field))
			}
			opts.Fields = append(opts.Fields, field)
		}
	}

	if sortParam := values.Get("sort"); sortParam != "" {
		for _, key := range strings.Split(sortParam, ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			desc := strings.HasPrefix(key, "-")
			field := strings.TrimPrefix(key, "-")
			col, ok := cols[field]
			if !ok {
				return nil, apperr.Validation("sort", fmt.Sprintf("unknown field %q", field))
			}
			opts.Sort = append(opts.Sort, SortKey{Column: col, Desc: desc})
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	// Iterate remaining keys in a stable order so generated SQL is deterministic
	keys := make([]string, 0, len(values))
	for key := range values {
		if _, reserved := reservedParams[key]; !reserved {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		match := filterKeyPattern.FindStringSubmatch(key)
		if match == nil {
			return nil, apperr.Validation(key, "malformed filter parameter")
		}

		field, opName := match[1], match[2]
		op := OpEq
		if opName != "" {
			var ok bool
			op, ok = operators[opName]
			if !ok {
				return nil, apperr.Validation(key, fmt.Sprintf("unsupported operator %q", opName))
			}
		}

		col, ok := cols[field]
		if !ok {
			return nil, apperr.Validation(key, fmt.Sprintf("unknown field %q", field))
		}

		for _, value := range values[key] {
			filter := Filter{Column: col, Op: op}
			if op == OpIn {
				filter.Values = strings.Split(value, ",")
			} else {
				filter.Values = []string{value}
			}
			opts.Filters = append(opts.Filters, filter)
		}
	}

	return opts, nil
}

// Conditions returns one SQL predicate per filter with its placeholder args
func (o *Options) Conditions() ([]string, []any) {
	clauses := make([]string, 0, len(o.Filters))
	args := make([]any, 0, len(o.Filters))

	for _, f := range o.Filters {
		if f.Op == OpIn {
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Values)), ", ")
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", f.Column, placeholders))
			for _, v := range f.Values {
				args = append(args, v)
			}
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s ?", f.Column, f.Op))
		args = append(args, f.Values[0])
	}

	return clauses, args
}

// WhereClause joins all filter predicates into a WHERE clause, or returns ""
// when no filters are present
func (o *Options) WhereClause() (string, []any) {
	clauses, args := o.Conditions()
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// OrderClause builds the ORDER BY clause, falling back to defaultOrder
// (a raw SQL fragment such as "created_at DESC") when no sort was requested
func (o *Options) OrderClause(defaultOrder string) string {
	if len(o.Sort) == 0 {
		return "ORDER BY " + defaultOrder
	}
	keys := make([]string, 0, len(o.Sort))
	for _, s := range o.Sort {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		keys = append(keys, s.Column+" "+dir)
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}

// LimitOffset returns the LIMIT and OFFSET values for the current page
func (o *Options) LimitOffset() (limit, offset int) {
	return o.Limit, (o.Page - 1) * o.Limit
}

// PageInfo describes an adjacent page
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds adjacent page descriptors for the response envelope
type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

// Paginate computes next/prev descriptors from the total count of rows
// matching the filtered predicate
func (o *Options) Paginate(total int) *Pagination {
	p := &Pagination{}
	if o.Page*o.Limit < total {
		p.Next = &PageInfo{Page: o.Page + 1, Limit: o.Limit}
	}
	if o.Page > 1 {
		p.Prev = &PageInfo{Page: o.Page - 1, Limit: o.Limit}
	}
	return p
}

// Project reduces an item to the selected fields plus the id field.
// With no selection the item is returned unchanged.
func (o *Options) Project(item any) any {
	if len(o.Fields) == 0 {
		return item
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return item
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return item
	}

	projected := make(map[string]any, len(o.Fields)+1)
	if id, ok := full["id"]; ok {
		projected["id"] = id
	}
	for _, field := range o.Fields {
		if v, ok := full[field]; ok {
			projected[field] = v
		}
	}
	return projected
}

// ProjectSlice applies Project to every item of a listing
func ProjectSlice[T any](o *Options, items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, o.Project(item))
	}
	return out
}
