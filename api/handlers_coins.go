package api

import (
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/config"
)

// CoinsResponse is one page of the coin table
type CoinsResponse struct {
	Coins         []coin_list.Coin `json:"coins"`
	TotalMatching int              `json:"total_matching"`
	TotalPages    int              `json:"total_pages"`
	Page          int              `json:"page"`
	PageSize      int              `json:"page_size"`
	Currency      string           `json:"currency"`
	Stale         bool             `json:"stale"`
	Error         string           `json:"error,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CoinResponse is the detail part of a coin page
type CoinResponse struct {
	Coin    coingecko_coins.CoinDetail `json:"coin"`
	Summary coingecko_coins.Summary    `json:"summary"`
	Stale   bool                       `json:"stale"`
	Error   string                     `json:"error,omitempty"`
}

// ChartResponse is the price chart of a coin page
type ChartResponse struct {
	Series   coingecko_market_chart.ChartSeries `json:"series"`
	Days     int                                `json:"days"`
	Currency string                             `json:"currency"`
	Stale    bool                               `json:"stale"`
	Error    string                             `json:"error,omitempty"`
}

// ChartDaysResponse lists the selectable chart ranges
type ChartDaysResponse struct {
	ChartDays   []config.ChartDay `json:"chart_days"`
	DefaultDays int               `json:"default_days"`
}

// handleCoins responds with one page of the filtered and sorted coin table
func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	currency, ok := s.currencyParam(r)
	if !ok {
		s.sendBadRequest(w, "unsupported currency '%s'", currency)
		return
	}

	query := s.table.DefaultQuery(getBoolParam(r, "compact"))
	query.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	query.MinPrice = coin_list.ParsePriceBound(r.URL.Query().Get("min_price"))
	query.MaxPrice = coin_list.ParsePriceBound(r.URL.Query().Get("max_price"))
	if sort := r.URL.Query().Get("sort"); sort != "" {
		query.SortField = coin_list.ParseSortField(sort)
	}
	if order := r.URL.Query().Get("order"); order != "" {
		query.SortDirection = coin_list.ParseSortDirection(order)
	}
	// malformed numbers fall back like out of range ones
	query.Page, _ = getIntParam(r, "page", 1)
	query.PageSize, _ = getIntParam(r, "page_size", query.PageSize)

	view, err := s.table.Refresh(r.Context(), currency, query)
	if err != nil {
		s.sendError(w, err)
		return
	}

	page := view.Result.Page
	if page == nil {
		page = []coin_list.Coin{}
	}

	s.setCacheStatusHeader(w, view.Status)
	s.sendJSONResponse(w, CoinsResponse{
		Coins:         page,
		TotalMatching: view.Result.TotalMatching,
		TotalPages:    view.TotalPages,
		Page:          view.Query.Page,
		PageSize:      view.Query.PageSize,
		Currency:      view.Currency,
		Stale:         view.Stale,
		Error:         errorMessage(view.Err),
		UpdatedAt:     view.UpdatedAt,
	})
}

// handleCoin responds with the details of a coin summarized in the requested currency
func (s *Server) handleCoin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	currency, ok := s.currencyParam(r)
	if !ok {
		s.sendBadRequest(w, "unsupported currency '%s'", currency)
		return
	}

	view, err := s.coinPage.Detail(r.Context(), id, currency)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.setCacheStatusHeader(w, view.Status)
	s.sendJSONResponse(w, CoinResponse{
		Coin:    view.Coin.Detail,
		Summary: view.Summary,
		Stale:   view.Stale,
		Error:   errorMessage(view.Err),
	})
}

// handleChart responds with the price series of a coin
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	currency, ok := s.currencyParam(r)
	if !ok {
		s.sendBadRequest(w, "unsupported currency '%s'", currency)
		return
	}

	days, ok := getIntParam(r, "days", s.ranges.DefaultDays())
	if !ok || days < 1 {
		s.sendBadRequest(w, "invalid days parameter, must be at least 1")
		return
	}

	loc := time.UTC
	if tz := strings.TrimSpace(r.URL.Query().Get("tz")); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			s.sendBadRequest(w, "unknown time zone '%s'", tz)
			return
		}
	}

	view, err := s.coinPage.Chart(r.Context(), id, days, currency, loc)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.setCacheStatusHeader(w, view.Status)
	s.sendJSONResponse(w, ChartResponse{
		Series:   view.Series,
		Days:     view.Days,
		Currency: view.Currency,
		Stale:    view.Stale,
		Error:    errorMessage(view.Err),
	})
}

// handleChartDays responds with the chart ranges the coin page offers
func (s *Server) handleChartDays(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, ChartDaysResponse{
		ChartDays:   s.ranges.ChartDays(),
		DefaultDays: s.ranges.DefaultDays(),
	})
}
