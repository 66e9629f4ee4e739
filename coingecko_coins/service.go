package coingecko_coins

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
)

// Service loads single coin details through the fetch cache
type Service struct {
	cache     cache.ICache
	endpoints *coingecko_common.Endpoints
}

// NewService creates a new coins service
func NewService(cache cache.ICache, endpoints *coingecko_common.Endpoints) *Service {
	return &Service{
		cache:     cache,
		endpoints: endpoints,
	}
}

// Start starts the service
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil || s.endpoints == nil {
		return fmt.Errorf("coins service not properly initialized")
	}
	log.Printf("Starting coins service")
	return nil
}

// Stop stops the service
func (s *Service) Stop() {}

// RequestKey returns the fetch cache key of coin id
func (s *Service) RequestKey(id string) string {
	return s.endpoints.SingleCoin(id)
}

// Coin returns the details of coin id. An empty id fails without touching the network.
func (s *Service) Coin(ctx context.Context, id string) (*Coin, interfaces.CacheStatus, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, "", fmt.Errorf("coin id is required")
	}

	result, err := s.cache.ResolveWithStatus(ctx, s.RequestKey(id))
	if err != nil {
		return nil, "", err
	}

	coin, err := NewCoin(result.Payload)
	if err != nil {
		log.Printf("CoinGecko-Coins: failed to decode %s: %v", id, err)
		return nil, "", err
	}
	return coin, result.Status, nil
}

// NewCoin decodes a /coins/{id} payload
func NewCoin(payload []byte) (*Coin, error) {
	var detail CoinDetail
	if err := json.Unmarshal(payload, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode coin: %w", err)
	}
	if detail.ID == "" {
		return nil, fmt.Errorf("coin payload has no id")
	}
	return &Coin{Detail: detail, raw: payload}, nil
}
