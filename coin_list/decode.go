package coin_list

import (
	"encoding/json"
	"fmt"
)

// DecodeMarkets converts a raw /coins/markets payload into coins.
// Rows that are not JSON objects are skipped and null numbers become 0.
func DecodeMarkets(payload []byte) ([]Coin, error) {
	var rows []interface{}
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode markets response: %w", err)
	}

	coins := make([]Coin, 0, len(rows))
	for _, row := range rows {
		itemMap, ok := row.(map[string]interface{})
		if !ok {
			continue
		}

		coins = append(coins, Coin{
			ID:                       getStringFromMap(itemMap, "id"),
			Symbol:                   getStringFromMap(itemMap, "symbol"),
			Name:                     getStringFromMap(itemMap, "name"),
			Image:                    getStringFromMap(itemMap, "image"),
			CurrentPrice:             getFloatFromMap(itemMap, "current_price"),
			MarketCap:                getFloatFromMap(itemMap, "market_cap"),
			MarketCapRank:            getIntFromMap(itemMap, "market_cap_rank"),
			PriceChangePercentage24h: getFloatFromMap(itemMap, "price_change_percentage_24h"),
		})
	}

	return coins, nil
}

// getStringFromMap safely extracts string from map
func getStringFromMap(m map[string]interface{}, key string) string {
	if value, exists := m[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

// getFloatFromMap safely extracts float64 from map
func getFloatFromMap(m map[string]interface{}, key string) float64 {
	if value, exists := m[key]; exists {
		if f, ok := value.(float64); ok {
			return f
		}
	}
	return 0.0
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if f := getFloatFromMap(m, key); f > 0 {
		return int(f)
	}
	return 0
}
