package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/dashboard"
)

// ChartRanges lists the chart ranges offered by the coin page
type ChartRanges interface {
	ChartDays() []config.ChartDay
	DefaultDays() int
}

// CacheStats reports fetch cache statistics for /health
type CacheStats interface {
	Stats() cache.ServiceStats
}

type Server struct {
	port     string
	cfg      config.DashboardConfig
	table    *dashboard.Table
	ticker   *dashboard.Ticker
	coinPage *dashboard.CoinPage
	ranges   ChartRanges
	cache    CacheStats
	upgrader websocket.Upgrader
	server   *http.Server
}

func New(port string, cfg config.DashboardConfig, table *dashboard.Table, ticker *dashboard.Ticker, coinPage *dashboard.CoinPage, ranges ChartRanges, stats CacheStats) *Server {
	return &Server{
		port:     port,
		cfg:      cfg,
		table:    table,
		ticker:   ticker,
		coinPage: coinPage,
		ranges:   ranges,
		cache:    stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the dashboard page may be served from another origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler builds the router with every endpoint
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(accessLogMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/coins", s.handleCoins).Methods(http.MethodGet)
	api.HandleFunc("/coins/{id}", s.handleCoin).Methods(http.MethodGet)
	api.HandleFunc("/coins/{id}/chart", s.handleChart).Methods(http.MethodGet)
	api.HandleFunc("/chart_days", s.handleChartDays).Methods(http.MethodGet)
	api.HandleFunc("/trending", s.handleTrending).Methods(http.MethodGet)
	api.HandleFunc("/ws/ticker", s.handleTickerStream).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
