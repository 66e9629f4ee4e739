package e2etest

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/status-im/market-dashboard/coingecko_common"
)

// MockServer imitates the CoinGecko endpoints used by the dashboard
type MockServer struct {
	server *httptest.Server

	mu         sync.RWMutex
	requests   map[string]int
	apiKeys    []string
	statusCode int // when set every request answers with it

	MarketsData  string
	TrendingData string
	CoinData     map[string]string
}

// NewMockServer creates and starts a new mock server
func NewMockServer() *MockServer {
	ms := &MockServer{
		requests:     make(map[string]int),
		MarketsData:  defaultMarketsData(),
		TrendingData: defaultTrendingData(),
		CoinData: map[string]string{
			"bitcoin": defaultBitcoinData(),
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// Close stops the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// FailWith makes every following request answer with code; 0 restores normal answers
func (ms *MockServer) FailWith(code int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.statusCode = code
}

// RequestCount returns how many times path was requested
func (ms *MockServer) RequestCount(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

// MarketsRequestCount returns how many markets requests with the given order were made
func (ms *MockServer) MarketsRequestCount(order string) int {
	return ms.RequestCount(coingecko_common.CoinsMarketsPath + "?order=" + order)
}

// requestKey tells the list and the trending markets requests apart
func requestKey(r *http.Request) string {
	if r.URL.Path == coingecko_common.CoinsMarketsPath {
		return r.URL.Path + "?order=" + r.URL.Query().Get("order")
	}
	return r.URL.Path
}

// APIKeys returns the Pro API keys seen so far, in order
func (ms *MockServer) APIKeys() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return append([]string(nil), ms.apiKeys...)
}

func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	query := r.URL.Query()

	ms.mu.Lock()
	ms.requests[requestKey(r)]++
	if key := r.Header.Get(coingecko_common.ProAPIKeyHeader); key != "" {
		ms.apiKeys = append(ms.apiKeys, key)
	}
	statusCode := ms.statusCode
	ms.mu.Unlock()

	log.Printf("MockServer: Received request for %s", r.URL.String())

	if statusCode != 0 {
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case path == coingecko_common.CoinsMarketsPath:
		if query.Get("order") == "gecko_desc" {
			fmt.Fprint(w, ms.TrendingData)
			return
		}
		fmt.Fprint(w, ms.MarketsData)
	case strings.HasSuffix(path, coingecko_common.MarketChartPath):
		fmt.Fprint(w, generateMarketChartData())
	case strings.HasPrefix(path, coingecko_common.CoinPathPrefix):
		id := strings.TrimPrefix(path, coingecko_common.CoinPathPrefix)
		data, ok := ms.CoinData[id]
		if !ok {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
			return
		}
		fmt.Fprint(w, data)
	default:
		log.Printf("MockServer: Path not found: %s", path)
		http.NotFound(w, r)
	}
}

func defaultMarketsData() string {
	return `[
	{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://assets.coingecko.com/coins/images/1/large/bitcoin.png","current_price":5000000,"market_cap":95000000000000,"market_cap_rank":1,"price_change_percentage_24h":2.5},
	{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"https://assets.coingecko.com/coins/images/279/large/ethereum.png","current_price":300000,"market_cap":36000000000000,"market_cap_rank":2,"price_change_percentage_24h":-1.2},
	{"id":"tether","symbol":"usdt","name":"Tether","image":"https://assets.coingecko.com/coins/images/325/large/tether.png","current_price":83,"market_cap":9000000000000,"market_cap_rank":3,"price_change_percentage_24h":0.01},
	{"id":"solana","symbol":"sol","name":"Solana","image":"https://assets.coingecko.com/coins/images/4128/large/solana.png","current_price":12000,"market_cap":5000000000000,"market_cap_rank":5,"price_change_percentage_24h":4.8},
	{"id":"dogecoin","symbol":"doge","name":"Dogecoin","image":"https://assets.coingecko.com/coins/images/5/large/dogecoin.png","current_price":12.5,"market_cap":1800000000000,"market_cap_rank":8,"price_change_percentage_24h":null}
]`
}

func defaultTrendingData() string {
	return `[
	{"id":"solana","symbol":"sol","name":"Solana","image":"https://assets.coingecko.com/coins/images/4128/large/solana.png","current_price":12000,"market_cap":5000000000000,"market_cap_rank":5,"price_change_percentage_24h":4.8},
	{"id":"dogecoin","symbol":"doge","name":"Dogecoin","image":"https://assets.coingecko.com/coins/images/5/large/dogecoin.png","current_price":12.5,"market_cap":1800000000000,"market_cap_rank":8,"price_change_percentage_24h":-3.1}
]`
}

func defaultBitcoinData() string {
	return `{
	"id": "bitcoin",
	"symbol": "btc",
	"name": "Bitcoin",
	"market_cap_rank": 1,
	"description": {"en": "Bitcoin is the first successful internet money based on peer-to-peer technology. It was created in 2009."},
	"image": {
		"thumb": "https://assets.coingecko.com/coins/images/1/thumb/bitcoin.png",
		"small": "https://assets.coingecko.com/coins/images/1/small/bitcoin.png",
		"large": "https://assets.coingecko.com/coins/images/1/large/bitcoin.png"
	},
	"market_data": {
		"current_price": {"inr": 5000000, "usd": 60000},
		"market_cap": {"inr": 95000000000000, "usd": 1200000000000}
	}
}`
}

// generateMarketChartData returns thirty daily points ending now
func generateMarketChartData() string {
	now := time.Now()

	var prices, marketCaps, totalVolumes []string
	for i := 29; i >= 0; i-- {
		timestamp := now.AddDate(0, 0, -i).UnixMilli()
		price := 4777723.0 + float64(i)*100
		prices = append(prices, fmt.Sprintf("[%d, %.2f]", timestamp, price))
		marketCaps = append(marketCaps, fmt.Sprintf("[%d, %d]", timestamp, 90500000000000+int64(i)*3000000000))
		totalVolumes = append(totalVolumes, fmt.Sprintf("[%d, %d]", timestamp, 2800000000000+int64(i)*500000000))
	}

	return fmt.Sprintf(`{
		"prices": [%s],
		"market_caps": [%s],
		"total_volumes": [%s]
	}`, strings.Join(prices, ","), strings.Join(marketCaps, ","), strings.Join(totalVolumes, ","))
}
