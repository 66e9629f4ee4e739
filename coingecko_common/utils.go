package coingecko_common

import (
	"strings"

	"github.com/status-im/market-dashboard/config"
)

// GetApiBaseUrl returns the API base URL for the key type, honoring config overrides
func GetApiBaseUrl(cfg *config.Config, keyType KeyType) string {
	if keyType == ProKey {
		if cfg.OverrideCoingeckoProURL != "" {
			return strings.TrimRight(cfg.OverrideCoingeckoProURL, "/")
		}
		return COINGECKO_PRO_URL
	}
	if cfg.OverrideCoingeckoPublicURL != "" {
		return strings.TrimRight(cfg.OverrideCoingeckoPublicURL, "/")
	}
	return COINGECKO_PUBLIC_URL
}

// rebaseURL swaps the from prefix of rawURL for to. URLs that do not start
// with from are returned unchanged.
func rebaseURL(rawURL, from, to string) string {
	if from == to || !strings.HasPrefix(rawURL, from) {
		return rawURL
	}
	return to + strings.TrimPrefix(rawURL, from)
}
