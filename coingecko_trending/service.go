package coingecko_trending

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

// Service resolves the trending list (markets ordered by gecko_desc) of a currency
type Service struct {
	cache     cache.ICache
	endpoints *coingecko_common.Endpoints
}

// NewService creates a new trending service
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

func (s *Service) RequestKey(currency string) string {
	return s.endpoints.TrendingCoins(normalizeCurrency(currency))
}

// Trending returns the trending coins priced in currency
func (s *Service) Trending(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error) {
	currency = normalizeCurrency(currency)
	if currency == "" {
		return nil, "", fmt.Errorf("currency is required")
	}

	result, err := s.cache.ResolveWithStatus(ctx, s.RequestKey(currency))
	if err != nil {
		return nil, "", err
	}

	coins, err := coin_list.DecodeMarkets(result.Payload)
	if err != nil {
		log.Printf("CoinGecko-Trending: failed to decode %s list: %v", currency, err)
		return nil, "", err
	}
	return coins, result.Status, nil
}

func normalizeCurrency(currency string) string {
	return strings.ToLower(strings.TrimSpace(currency))
}
