// Package history keeps the append-only trade log, one sequence per
// market in insertion order.
package history

import "github.com/helios-exchange/helios/internal/trading/model"

// TradeHistory records every settled trade. Trades are immutable and
// insertion order is the only ordering guarantee.
type TradeHistory struct {
	trades map[model.Market][]model.Trade
}

// New returns an empty history.
func New() *TradeHistory {
	return &TradeHistory{trades: make(map[model.Market][]model.Trade)}
}

// Add appends trade to its market's sequence, creating the sequence on
// first use.
func (h *TradeHistory) Add(trade model.Trade) {
	h.trades[trade.Market] = append(h.trades[trade.Market], trade)
}

// MarketHistory returns a copy of the trades recorded for market, in
// insertion order. Unknown markets yield an empty slice.
func (h *TradeHistory) MarketHistory(market model.Market) []model.Trade {
	stored := h.trades[market]
	out := make([]model.Trade, len(stored))
	copy(out, stored)
	return out
}
