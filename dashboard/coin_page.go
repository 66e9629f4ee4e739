package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
)

// CoinView is the detail part of a coin page
type CoinView struct {
	Coin      *coingecko_coins.Coin
	Summary   coingecko_coins.Summary
	State     State
	Stale     bool
	Status    interfaces.CacheStatus
	Err       error
	UpdatedAt time.Time
}

// ChartView is the chart part of a coin page
type ChartView struct {
	Series    coingecko_market_chart.ChartSeries
	Currency  string
	Days      int
	State     State
	Stale     bool
	Status    interfaces.CacheStatus
	Err       error
	UpdatedAt time.Time
}

// CoinPage loads coin details and price charts. Details are keyed by coin id,
// charts by id, days and currency, so switching range never shows the
// series of another range.
type CoinPage struct {
	coins   CoinSource
	charts  ChartSource
	details *Group[*coingecko_coins.Coin]
	series  *Group[coingecko_market_chart.ChartSeries]
}

func NewCoinPage(coins CoinSource, charts ChartSource, em events.ISubscriptionManager) *CoinPage {
	return &CoinPage{
		coins:   coins,
		charts:  charts,
		details: NewGroup[*coingecko_coins.Coin](events.TopicCoinPage, em),
		series:  NewGroup[coingecko_market_chart.ChartSeries](events.TopicCoinPage, em),
	}
}

// Detail loads coin id and summarizes it in currency
func (p *CoinPage) Detail(ctx context.Context, id, currency string) (CoinView, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return CoinView{}, fmt.Errorf("coin id is required")
	}

	snap := p.details.Get(id).Load(ctx, id, func(ctx context.Context) (*coingecko_coins.Coin, interfaces.CacheStatus, error) {
		return p.coins.Coin(ctx, id)
	})

	view := CoinView{
		State:     snap.State,
		Stale:     snap.Stale,
		Status:    snap.Status,
		Err:       snap.Err,
		UpdatedAt: snap.UpdatedAt,
	}
	if !snap.HasData || snap.Data == nil {
		return view, snap.Err
	}
	if snap.Stale {
		view.Status = interfaces.CacheStatusStale
	}
	view.Coin = snap.Data
	view.Summary = snap.Data.Summary(currency)
	return view, nil
}

// Chart loads the price series of coin id over days, labelled in loc
func (p *CoinPage) Chart(ctx context.Context, id string, days int, currency string, loc *time.Location) (ChartView, error) {
	params := coingecko_market_chart.MarketChartParams{ID: id, Currency: currency, Days: days}.Normalized()
	if err := params.Validate(); err != nil {
		return ChartView{}, err
	}

	if loc == nil {
		loc = time.UTC
	}
	key := chartKey(params, loc)
	snap := p.series.Get(key).Load(ctx, key, func(ctx context.Context) (coingecko_market_chart.ChartSeries, interfaces.CacheStatus, error) {
		return p.charts.Series(ctx, params, loc)
	})

	view := ChartView{
		Currency:  params.Currency,
		Days:      params.Days,
		State:     snap.State,
		Stale:     snap.Stale,
		Status:    snap.Status,
		Err:       snap.Err,
		UpdatedAt: snap.UpdatedAt,
	}
	if !snap.HasData {
		// the same chart may be stored for another time zone
		series, fetchedAt, ok := p.charts.PeekSeries(params, loc)
		if snap.Err == nil || !ok {
			return view, snap.Err
		}
		view.Series, view.UpdatedAt = series, fetchedAt
		view.Stale, view.Status = true, interfaces.CacheStatusStale
		return view, nil
	}
	if snap.Stale {
		view.Status = interfaces.CacheStatusStale
	}
	view.Series = snap.Data
	return view, nil
}

func chartKey(params coingecko_market_chart.MarketChartParams, loc *time.Location) string {
	return params.ID + ":" + params.Currency + ":" + strconv.Itoa(params.Days) + ":" + loc.String()
}
