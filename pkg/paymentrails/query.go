package paymentrails

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// reservedParams are set from the typed fields and never from Filters.
var reservedParams = map[string]bool{
	"page":     true,
	"pageSize": true,
	"search":   true,
}

// QueryParams holds list options shared by every collection endpoint.
type QueryParams struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string][]string
}

// NewQueryParams creates a new QueryParams instance.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithPage sets the 1-based page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithPageSize sets the number of items per page.
func (q *QueryParams) WithPageSize(pageSize int) *QueryParams {
	q.PageSize = pageSize

	return q
}

// WithSearch sets the free-text search term.
func (q *QueryParams) WithSearch(term string) *QueryParams {
	q.Search = term

	return q
}

// WithFilter appends values to a filter. Filters named page, pageSize or search are
// ignored by ToValues; use the typed setters instead.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// Clone returns a deep copy. Cloning nil yields empty params.
func (q *QueryParams) Clone() *QueryParams {
	clone := NewQueryParams()
	if q == nil {
		return clone
	}

	clone.Page = q.Page
	clone.PageSize = q.PageSize
	clone.Search = q.Search

	for key, values := range q.Filters {
		clone.Filters[key] = append([]string(nil), values...)
	}

	return clone
}

// ToValues converts the params to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	if q.Search != "" {
		values.Set("search", q.Search)
	}

	keys := make([]string, 0, len(q.Filters))
	for key := range q.Filters {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if reservedParams[key] {
			continue
		}

		if len(q.Filters[key]) > 0 {
			values.Set(key, strings.Join(q.Filters[key], ","))
		}
	}

	return values
}
