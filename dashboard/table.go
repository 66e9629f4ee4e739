package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
)

// TableView is one rendered page of the coin table
type TableView struct {
	Currency   string
	Query      coin_list.Query
	Result     coin_list.Result
	TotalPages int
	State      State
	Stale      bool
	Status     interfaces.CacheStatus
	Err        error
	UpdatedAt  time.Time
}

// Table derives the coin table of a currency. The coin list is loaded per
// currency; filters, sort and pagination are applied on every refresh.
type Table struct {
	markets   MarketsSource
	cfg       config.DashboardConfig
	resources *Group[[]coin_list.Coin]
}

func NewTable(markets MarketsSource, cfg config.DashboardConfig, em events.ISubscriptionManager) *Table {
	return &Table{
		markets:   markets,
		cfg:       cfg,
		resources: NewGroup[[]coin_list.Coin](events.TopicTable, em),
	}
}

// DefaultQuery returns the initial query with the configured page size.
// Unset sizes fall back to the layout defaults.
func (t *Table) DefaultQuery(compact bool) coin_list.Query {
	q := coin_list.DefaultQuery()
	q.PageSize = t.cfg.PageSize
	if compact {
		q.PageSize = t.cfg.CompactPageSize
	}
	if q.PageSize < 1 {
		q.PageSize = coin_list.PageSizeFor(compact)
	}
	return q
}

// Refresh loads the coin list of currency and applies q to it.
// The error is returned only when there is nothing to show, stale data included.
func (t *Table) Refresh(ctx context.Context, currency string, q coin_list.Query) (TableView, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if !t.cfg.SupportsCurrency(currency) {
		return TableView{}, fmt.Errorf("unsupported currency '%s'", currency)
	}
	if q.PageSize < 1 {
		q.PageSize = t.DefaultQuery(false).PageSize
	}
	q = q.Normalized()

	snap := t.resources.Get(currency).Load(ctx, currency, func(ctx context.Context) ([]coin_list.Coin, interfaces.CacheStatus, error) {
		return t.markets.Markets(ctx, currency)
	})

	view := TableView{
		Currency:  currency,
		Query:     q,
		State:     snap.State,
		Stale:     snap.Stale,
		Status:    snap.Status,
		Err:       snap.Err,
		UpdatedAt: snap.UpdatedAt,
	}
	if !snap.HasData {
		return view, snap.Err
	}
	if snap.Stale {
		view.Status = interfaces.CacheStatusStale
	}

	view.Result = coin_list.Transform(snap.Data, q)
	view.TotalPages = view.Result.TotalPages(q.PageSize)
	return view, nil
}

// Snapshot returns the stored state of the coin list for currency
func (t *Table) Snapshot(currency string) (Snapshot[[]coin_list.Coin], bool) {
	r, ok := t.resources.Lookup(strings.ToLower(currency))
	if !ok {
		return Snapshot[[]coin_list.Coin]{}, false
	}
	return r.Snapshot(), true
}
