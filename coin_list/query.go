package coin_list

import (
	"math"
	"strconv"
	"strings"
)

// DefaultQuery is the state of a freshly opened table
func DefaultQuery() Query {
	return Query{
		SortField:     SortByMarketCap,
		SortDirection: Descending,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// ClearFilters drops the search text and both price bounds and goes back to
// the first page. Sorting and page size are kept.
func (q Query) ClearFilters() Query {
	q.Search = ""
	q.MinPrice = nil
	q.MaxPrice = nil
	q.Page = 1
	return q
}

// Normalized returns q with Page and PageSize moved into their valid range
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// PageSizeFor returns the number of rows per page for the layout
func PageSizeFor(compact bool) int {
	if compact {
		return CompactPageSize
	}
	return DefaultPageSize
}

// ParsePriceBound is the single place where raw bound input is coerced.
// Anything that is not a finite number means "no bound".
func ParsePriceBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// ParseSortField accepts the API names and the camelCase ones used by the
// browser page. Unknown input falls back to market cap.
func ParseSortField(raw string) SortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "market_cap", "marketcap":
		return SortByMarketCap
	case "price", "current_price":
		return SortByPrice
	case "change", "price_change_percentage_24h":
		return SortByChange
	default:
		return SortByMarketCap
	}
}

// ParseSortDirection falls back to desc
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(Ascending)) {
		return Ascending
	}
	return Descending
}
