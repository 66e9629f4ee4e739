package coingecko_coins

// CoinDetail is the part of the /coins/{id} response the coin page shows
type CoinDetail struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	Description   struct {
		En string `json:"en"`
	} `json:"description"`
	Image struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
	} `json:"market_data"`
}

// Summary holds the per currency figures of a coin
type Summary struct {
	Currency string `json:"currency"`
	// Headline is the first sentence of the English description
	Headline          string  `json:"headline"`
	Rank              int     `json:"rank"`
	Price             float64 `json:"price"`
	HasPrice          bool    `json:"has_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapMillions int64   `json:"market_cap_millions"`
}

// Coin is a decoded coin together with its raw payload
type Coin struct {
	Detail CoinDetail
	raw    []byte
}
