package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/interfaces"
)

const (
	// Ticker stream timeouts
	PING_INTERVAL = 20 * time.Second
	PONG_TIMEOUT  = 60 * time.Second
	WRITE_TIMEOUT = 10 * time.Second
)

// TrendingResponse is the trending list of a currency, also pushed on the ticker stream
type TrendingResponse struct {
	Coins     []coin_list.Coin `json:"coins"`
	Currency  string           `json:"currency"`
	State     dashboard.State  `json:"state"`
	Stale     bool             `json:"stale"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func trendingResponse(currency string, snap dashboard.Snapshot[[]coin_list.Coin]) TrendingResponse {
	coins := snap.Data
	if coins == nil {
		coins = []coin_list.Coin{}
	}
	return TrendingResponse{
		Coins:     coins,
		Currency:  currency,
		State:     snap.State,
		Stale:     snap.Stale,
		Error:     errorMessage(snap.Err),
		UpdatedAt: snap.UpdatedAt,
	}
}

// handleTrending responds with the trending list. refresh=true forces a new
// load, which is how the view retries after a failure.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	currency, ok := s.currencyParam(r)
	if !ok {
		s.sendBadRequest(w, "unsupported currency '%s'", currency)
		return
	}

	snap := s.ticker.Current(r.Context(), currency, getBoolParam(r, "refresh"))
	if !snap.HasData && snap.Err != nil {
		s.sendError(w, snap.Err)
		return
	}

	status := snap.Status
	if snap.Stale {
		status = interfaces.CacheStatusStale
	}
	s.setCacheStatusHeader(w, status)
	s.sendJSONResponse(w, trendingResponse(currency, snap))
}

// handleTickerStream pushes the trending list of a currency every time it
// changes. The current list is sent right after the upgrade.
func (s *Server) handleTickerStream(w http.ResponseWriter, r *http.Request) {
	currency, ok := s.currencyParam(r)
	if !ok {
		s.sendBadRequest(w, "unsupported currency '%s'", currency)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Ticker stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := s.ticker.Subscribe(currency)
	defer sub.Cancel()

	// the client only sends control frames; reading detects the close
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Ticker stream: read error: %v", err)
				}
				return
			}
		}
	}()

	send := func(snap dashboard.Snapshot[[]coin_list.Coin]) bool {
		conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		if err := conn.WriteJSON(trendingResponse(currency, snap)); err != nil {
			log.Printf("Ticker stream: write failed: %v", err)
			return false
		}
		return true
	}

	initial := s.ticker.Current(r.Context(), currency, false)
	if !send(initial) {
		return
	}
	lastGen, lastState := initial.Generation, initial.State

	ping := time.NewTicker(PING_INTERVAL)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WRITE_TIMEOUT)); err != nil {
				return
			}
		case _, ok := <-sub.Chan():
			if !ok {
				return
			}
			snap, found := s.ticker.Snapshot(currency)
			// loading notifications and already sent states carry nothing new
			if !found || snap.State == dashboard.Loading ||
				(snap.Generation == lastGen && snap.State == lastState) {
				continue
			}
			if !send(snap) {
				return
			}
			lastGen, lastState = snap.Generation, snap.State
		}
	}
}
