package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of /health
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	// TickerLastRun is when the trending refresher last ran, nil before the first run
	TickerLastRun *time.Time       `json:"ticker_last_run,omitempty"`
	FetchCache    *FetchCacheStats `json:"fetch_cache,omitempty"`
}

// FetchCacheStats mirrors cache.ServiceStats
type FetchCacheStats struct {
	Items    int   `json:"items"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Failures int64 `json:"failures"`
}

// handleHealth always answers 200; the ticker is reported up once it holds a list
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Services: map[string]string{"ticker": "unknown"},
	}

	if s.ticker != nil {
		if s.ticker.Healthy() {
			resp.Services["ticker"] = "up"
		}
		if lastRun := s.ticker.LastRun(); !lastRun.IsZero() {
			resp.TickerLastRun = &lastRun
		}
	}

	if s.cache != nil {
		stats := s.cache.Stats()
		resp.FetchCache = &FetchCacheStats{
			Items:    stats.Items,
			Hits:     stats.Hits,
			Misses:   stats.Misses,
			Failures: stats.Failures,
		}
	}

	s.sendJSONResponse(w, resp)
}
