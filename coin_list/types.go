package coin_list

// Coin is one row of the CoinGecko /coins/markets response, reduced to the
// fields the dashboard table shows and sorts on
type Coin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

// SortField names the numeric column the table is ordered by
type SortField string

const (
	SortByMarketCap SortField = "market_cap"
	SortByPrice     SortField = "price"
	SortByChange    SortField = "change"
)

// SortDirection is asc or desc
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

const (
	DefaultPageSize = 10
	CompactPageSize = 5
)

// Query is the table state supplied by the view on every recomputation.
// A nil bound means no filtering on that side.
type Query struct {
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
	SortField     SortField
	SortDirection SortDirection
	Page          int // 1-based
	PageSize      int
}

// Result is one page of the filtered and sorted list
type Result struct {
	Page          []Coin
	TotalMatching int
}
