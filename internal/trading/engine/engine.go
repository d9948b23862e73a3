// Package engine routes order requests to the order book of their
// market and maintains the market registry.
package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/trading/model"
	"github.com/helios-exchange/helios/internal/trading/orderbook"
)

// ErrMarketExists is returned when registering a market twice.
var ErrMarketExists = errors.New("engine: market already registered")

// Engine owns one order book per registered market. All per-market
// operations require a registered market; an unknown market is a
// precondition violation and aborts the process, never a silent no-op.
type Engine struct {
	logger *zap.Logger
	books  map[model.Market]*orderbook.OrderBook
}

// New creates an engine with no markets.
func New(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		books:  make(map[model.Market]*orderbook.OrderBook),
	}
}

// RegisterMarket creates an empty order book for market.
func (e *Engine) RegisterMarket(market model.Market) error {
	if _, exists := e.books[market]; exists {
		return ErrMarketExists
	}
	e.books[market] = orderbook.New(market, e.logger.With(zap.String("market", market.String())))
	e.logger.Info("market registered", zap.String("market", market.String()))
	return nil
}

// HasMarket reports whether market is registered.
func (e *Engine) HasMarket(market model.Market) bool {
	_, ok := e.books[market]
	return ok
}

func (e *Engine) book(market model.Market) *orderbook.OrderBook {
	book, ok := e.books[market]
	if !ok {
		e.logger.Panic("operation on unregistered market",
			zap.String("market", market.String()))
	}
	return book
}

// Submit dispatches req to the order book of its market and returns the
// executions plus the unfilled remainder. The remainder is in base
// units for limit and market-sell requests and in quote units for
// market-buy requests. Limit remainders rest on the book before Submit
// returns; market remainders never rest.
func (e *Engine) Submit(req model.OrderRequest) ([]model.Execution, model.Quantity) {
	book := e.book(req.RequestMarket())

	switch r := req.(type) {
	case model.LimitOrderRequest:
		remaining := r.BaseQuantity
		var executions []model.Execution
		if r.Side == model.SideBuy {
			executions = book.MatchLimitBuy(r.ID, r.LimitPrice, &remaining)
		} else {
			executions = book.MatchLimitSell(r.ID, r.LimitPrice, &remaining)
		}
		if remaining > 0 {
			book.InsertResting(r.Side, model.RestingOrder{
				OrderID:       r.ID,
				LimitPrice:    r.LimitPrice,
				InitialBase:   r.BaseQuantity,
				RemainingBase: remaining,
			})
		}
		return executions, remaining

	case model.MarketBuyByQuoteRequest:
		budget := r.QuoteBudget
		executions := book.MatchMarketBuyByQuote(r.ID, &budget)
		return executions, budget

	case model.MarketSellByBaseRequest:
		remaining := r.BaseQuantity
		executions := book.MatchMarketSellByBase(r.ID, &remaining)
		return executions, remaining

	default:
		e.logger.Panic("unknown order request variant")
		return nil, 0
	}
}

// Cancel removes orderID from market's book. The second return is false
// if the order is not resting.
func (e *Engine) Cancel(market model.Market, orderID model.OrderID) (model.CancelResult, bool) {
	return e.book(market).Cancel(orderID)
}

// BestBid returns the top bid of market, or false on an empty side.
func (e *Engine) BestBid(market model.Market) (model.Price, bool) {
	return e.book(market).BestBid()
}

// BestAsk returns the top ask of market, or false on an empty side.
func (e *Engine) BestAsk(market model.Market) (model.Price, bool) {
	return e.book(market).BestAsk()
}

// Book exposes the order book of market to invariant checks in tests.
func (e *Engine) Book(market model.Market) *orderbook.OrderBook {
	return e.book(market)
}
