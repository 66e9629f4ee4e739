package coingecko_markets

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
)

// Service resolves the coin list of a currency through the fetch cache
type Service struct {
	cache     cache.ICache
	endpoints *coingecko_common.Endpoints
}

func NewService(cache cache.ICache, endpoints *coingecko_common.Endpoints) *Service {
	return &Service{
		cache:     cache,
		endpoints: endpoints,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	if s.endpoints == nil {
		return fmt.Errorf("endpoints not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// RequestKey returns the fetch cache key of the coin list for currency
func (s *Service) RequestKey(currency string) string {
	return s.endpoints.CoinList(currency)
}

// Markets returns the coins ordered by market cap, priced in currency
func (s *Service) Markets(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return nil, "", fmt.Errorf("currency is required")
	}

	result, err := s.cache.ResolveWithStatus(ctx, s.RequestKey(currency))
	if err != nil {
		return nil, "", err
	}

	coins, err := coin_list.DecodeMarkets(result.Payload)
	if err != nil {
		log.Printf("CoinGecko-Markets: failed to decode %s list: %v", currency, err)
		return nil, "", err
	}

	return coins, result.Status, nil
}
