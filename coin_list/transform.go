package coin_list

import (
	"sort"
	"strings"
)

// Transform filters, stable-sorts and paginates records, in that order.
// records is never modified.
func Transform(records []Coin, q Query) Result {
	q = q.Normalized()

	filtered := Filter(records, q)
	Sort(filtered, q.SortField, q.SortDirection)

	return Result{
		Page:          paginate(filtered, q.Page, q.PageSize),
		TotalMatching: len(filtered),
	}
}

// Filter returns a new slice with the records matching the search text and
// both price bounds
func Filter(records []Coin, q Query) []Coin {
	search := strings.ToLower(q.Search)

	filtered := make([]Coin, 0, len(records))
	for _, coin := range records {
		if matches(coin, search, q.MinPrice, q.MaxPrice) {
			filtered = append(filtered, coin)
		}
	}
	return filtered
}

func matches(coin Coin, search string, minPrice, maxPrice *float64) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(coin.Name), search) &&
		!strings.Contains(strings.ToLower(coin.Symbol), search) {
		return false
	}
	if minPrice != nil && coin.CurrentPrice < *minPrice {
		return false
	}
	if maxPrice != nil && coin.CurrentPrice > *maxPrice {
		return false
	}
	return true
}

// Sort orders coins in place, keeping the relative order of ties.
// An unknown field leaves the slice as is.
func Sort(coins []Coin, field SortField, direction SortDirection) {
	value, ok := sortValue(field)
	if !ok {
		return
	}

	sort.SliceStable(coins, func(i, j int) bool {
		if direction == Ascending {
			return value(coins[i]) < value(coins[j])
		}
		return value(coins[i]) > value(coins[j])
	})
}

func sortValue(field SortField) (func(Coin) float64, bool) {
	switch field {
	case SortByMarketCap:
		return func(c Coin) float64 { return c.MarketCap }, true
	case SortByPrice:
		return func(c Coin) float64 { return c.CurrentPrice }, true
	case SortByChange:
		return func(c Coin) float64 { return c.PriceChangePercentage24h }, true
	default:
		return nil, false
	}
}

func paginate(coins []Coin, page, pageSize int) []Coin {
	// compare in pages so huge page numbers cannot overflow the offset
	if page-1 >= pageCount(len(coins), pageSize) {
		return []Coin{}
	}
	start := (page - 1) * pageSize
	end := len(coins)
	if len(coins)-start > pageSize {
		end = start + pageSize
	}
	return coins[start:end]
}

// TotalPages is ceil(TotalMatching / pageSize)
func (r Result) TotalPages(pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return pageCount(r.TotalMatching, pageSize)
}

func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
