package coingecko_coins

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Summarize extracts the figures for currency straight from a raw /coins/{id} payload
func Summarize(raw []byte, currency string) Summary {
	currency = strings.ToLower(strings.TrimSpace(currency))
	result := gjson.ParseBytes(raw)

	summary := Summary{
		Currency: currency,
		Headline: headline(result.Get("description.en").String()),
		Rank:     int(result.Get("market_cap_rank").Int()),
	}
	if currency == "" {
		return summary
	}

	price := result.Get("market_data.current_price." + gjson.Escape(currency))
	if price.Exists() && price.Type == gjson.Number {
		summary.Price = price.Float()
		summary.HasPrice = true
	}

	marketCap := result.Get("market_data.market_cap." + gjson.Escape(currency))
	if marketCap.Exists() {
		summary.MarketCap = marketCap.Float()
		summary.MarketCapMillions = int64(summary.MarketCap / 1_000_000)
	}
	return summary
}

// Summary extracts the figures for currency
func (c *Coin) Summary(currency string) Summary {
	return Summarize(c.raw, currency)
}

// Raw returns the payload the coin was decoded from
func (c *Coin) Raw() []byte {
	return c.raw
}

// headline returns the text up to the first ". ", with a closing period
func headline(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}
	first, _, _ := strings.Cut(description, ". ")
	first = strings.TrimSuffix(first, ".")
	return first + "."
}
