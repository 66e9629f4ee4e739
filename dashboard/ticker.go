package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/metrics"
	"github.com/status-im/market-dashboard/scheduler"
)

// Ticker keeps the trending list of every configured currency up to date.
// A failed refresh keeps the last good list; the next tick or an explicit
// Trigger tries again.
type Ticker struct {
	source     TrendingSource
	currencies []string
	cfg        config.TickerConfig
	events     events.ISubscriptionManager
	resources  *Group[[]coin_list.Coin]
	scheduler  *scheduler.Scheduler
}

func NewTicker(source TrendingSource, currencies []string, cfg config.TickerConfig, em events.ISubscriptionManager) *Ticker {
	return &Ticker{
		source:     source,
		currencies: currencies,
		cfg:        cfg,
		events:     em,
		resources:  NewGroup[[]coin_list.Coin](events.TopicTrending, em),
	}
}

// Start implements core.Interface
func (t *Ticker) Start(ctx context.Context) error {
	if t.source == nil {
		return fmt.Errorf("trending source not provided")
	}
	if !t.cfg.Enabled {
		log.Printf("Ticker: background refresh disabled")
		return nil
	}

	t.scheduler = scheduler.New(metrics.ServiceTrending, t.cfg.UpdateInterval, t.refreshAll)
	t.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface
func (t *Ticker) Stop() {
	if t.scheduler != nil {
		t.scheduler.Stop()
	}
}

func (t *Ticker) refreshAll(ctx context.Context) {
	for _, currency := range t.currencies {
		snap := t.Refresh(ctx, currency)
		if snap.Err != nil {
			log.Printf("Ticker: refresh of %s failed, keeping last list: %v", currency, snap.Err)
		}
	}
}

// Refresh loads the trending list of currency now
func (t *Ticker) Refresh(ctx context.Context, currency string) Snapshot[[]coin_list.Coin] {
	currency = strings.ToLower(strings.TrimSpace(currency))
	return t.resources.Get(currency).Load(ctx, currency, func(ctx context.Context) ([]coin_list.Coin, interfaces.CacheStatus, error) {
		return t.source.Trending(ctx, currency)
	})
}

// Trigger asks the background loop for an immediate refresh of every currency.
// Without a running loop it does nothing.
func (t *Ticker) Trigger() {
	if t.scheduler != nil {
		t.scheduler.Trigger()
	}
}

// Snapshot returns the stored trending list of currency
func (t *Ticker) Snapshot(currency string) (Snapshot[[]coin_list.Coin], bool) {
	r, ok := t.resources.Lookup(strings.ToLower(strings.TrimSpace(currency)))
	if !ok {
		return Snapshot[[]coin_list.Coin]{}, false
	}
	return r.Snapshot(), true
}

// Current returns the stored list of currency, loading it when nothing was
// stored yet or when force is set
func (t *Ticker) Current(ctx context.Context, currency string, force bool) Snapshot[[]coin_list.Coin] {
	if !force {
		if snap, ok := t.Snapshot(currency); ok && (snap.HasData || snap.State == Errored) {
			return snap
		}
	}
	return t.Refresh(ctx, currency)
}

// Subscribe returns a subscription notified whenever the list of currency changes state
func (t *Ticker) Subscribe(currency string) events.ISubscription {
	return t.events.Subscribe(events.Topic(events.TopicTrending, strings.TrimSpace(currency)))
}

// LastRun returns when the background loop last ran
func (t *Ticker) LastRun() time.Time {
	if t.scheduler == nil {
		return time.Time{}
	}
	return t.scheduler.LastRun()
}

// Healthy reports whether at least one currency has a trending list
func (t *Ticker) Healthy() bool {
	for _, currency := range t.currencies {
		if snap, ok := t.Snapshot(currency); ok && snap.HasData {
			return true
		}
	}
	return false
}
