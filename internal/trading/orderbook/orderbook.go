// Package orderbook implements the per-market limit order book.
//
// Orders rest in price levels and match with price/time priority: the
// best price level is consumed first, and within one level orders fill
// in insertion order. Both ladders are B-tree maps keyed by price; each
// level keeps its orders in an insertion-ordered linked list so that
// cancellation by stored position is O(1) and never invalidates the
// positions of other orders.
package orderbook

import (
	"container/list"

	"github.com/tidwall/btree"
	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/trading/model"
)

// priceLevel is the FIFO queue of resting orders at one price. Levels
// are non-empty by construction; an emptied level is removed from its
// ladder immediately.
type priceLevel struct {
	orders *list.List // of *model.RestingOrder
}

func newPriceLevel() *priceLevel {
	return &priceLevel{orders: list.New()}
}

func (pl *priceLevel) front() (*list.Element, *model.RestingOrder) {
	e := pl.orders.Front()
	return e, e.Value.(*model.RestingOrder)
}

// orderLocation pins a resting order to its side, price level and list
// position for O(1) cancellation.
type orderLocation struct {
	side  model.Side
	price model.Price
	elem  *list.Element
}

// OrderBook holds the bid and ask ladders of one market plus an index
// over every resting order. The book owns its resting orders
// exclusively; callers only ever see executions and cancel results.
type OrderBook struct {
	market model.Market
	logger *zap.Logger

	bids  *btree.Map[model.Price, *priceLevel]
	asks  *btree.Map[model.Price, *priceLevel]
	index map[model.OrderID]orderLocation
}

// New creates an empty order book for market.
func New(market model.Market, logger *zap.Logger) *OrderBook {
	return &OrderBook{
		market: market,
		logger: logger,
		bids:   btree.NewMap[model.Price, *priceLevel](32),
		asks:   btree.NewMap[model.Price, *priceLevel](32),
		index:  make(map[model.OrderID]orderLocation),
	}
}

// Market returns the market this book trades.
func (ob *OrderBook) Market() model.Market { return ob.market }

// MatchLimitBuy matches a taker buy with the given limit against the
// asks, best price first. remaining is reduced in place by every fill;
// the caller decides what to do with a non-zero remainder (limit orders
// rest, market orders refund).
//
// The execution price is always the maker's resting price, so the taker
// receives any price improvement. The taker's limit rides along in
// BuyOrderLimitPrice for the settlement refund.
func (ob *OrderBook) MatchLimitBuy(takerID model.OrderID, limitPrice model.Price, remaining *model.Quantity) []model.Execution {
	var executions []model.Execution
	for *remaining > 0 {
		price, level, ok := ob.asks.Min()
		if !ok || price > limitPrice {
			break
		}
		elem, maker := level.front()
		executed := min(*remaining, maker.RemainingBase)
		maker.Reduce(executed)
		*remaining -= executed

		executions = append(executions, model.Execution{
			BuyOrderID:         takerID,
			SellOrderID:        maker.OrderID,
			Quantity:           executed,
			ExecutionPrice:     price,
			BuyOrderLimitPrice: limitPrice,
			BuyFilled:          *remaining == 0,
			SellFilled:         maker.Filled(),
		})

		ob.removeIfFilled(ob.asks, price, level, elem, maker)
	}
	return executions
}

// MatchLimitSell matches a taker sell against the bids, best (highest)
// price first. Executions report the resting buyer's limit price, which
// equals the execution price, so there is never a refund on
// sell-initiated fills.
func (ob *OrderBook) MatchLimitSell(takerID model.OrderID, limitPrice model.Price, remaining *model.Quantity) []model.Execution {
	var executions []model.Execution
	for *remaining > 0 {
		price, level, ok := ob.bids.Max()
		if !ok || price < limitPrice {
			break
		}
		elem, maker := level.front()
		executed := min(*remaining, maker.RemainingBase)
		maker.Reduce(executed)
		*remaining -= executed

		executions = append(executions, model.Execution{
			BuyOrderID:         maker.OrderID,
			SellOrderID:        takerID,
			Quantity:           executed,
			ExecutionPrice:     price,
			BuyOrderLimitPrice: maker.LimitPrice,
			BuyFilled:          maker.Filled(),
			SellFilled:         *remaining == 0,
		})

		ob.removeIfFilled(ob.bids, price, level, elem, maker)
	}
	return executions
}

// MatchMarketBuyByQuote spends the quote budget against the asks. At
// each level only whole base units are bought: if the remaining budget
// cannot pay for one unit at the current best price it cannot pay at
// any worse price either, so matching stops and the residual budget is
// left for the caller to refund.
func (ob *OrderBook) MatchMarketBuyByQuote(takerID model.OrderID, quoteBudget *model.Quantity) []model.Execution {
	var executions []model.Execution
	for *quoteBudget > 0 {
		price, level, ok := ob.asks.Min()
		if !ok {
			break
		}
		maxBaseAtPrice := *quoteBudget / price
		if maxBaseAtPrice == 0 {
			break
		}
		elem, maker := level.front()
		executed := min(maxBaseAtPrice, maker.RemainingBase)
		maker.Reduce(executed)
		*quoteBudget -= executed * price

		executions = append(executions, model.Execution{
			BuyOrderID:         takerID,
			SellOrderID:        maker.OrderID,
			Quantity:           executed,
			ExecutionPrice:     price,
			BuyOrderLimitPrice: price,
			BuyFilled:          *quoteBudget == 0,
			SellFilled:         maker.Filled(),
		})

		ob.removeIfFilled(ob.asks, price, level, elem, maker)
	}
	return executions
}

// MatchMarketSellByBase sells base units against the bids without a
// price bound, best price first, until the quantity is sold or the bids
// are exhausted.
func (ob *OrderBook) MatchMarketSellByBase(takerID model.OrderID, baseQuantity *model.Quantity) []model.Execution {
	var executions []model.Execution
	for *baseQuantity > 0 {
		price, level, ok := ob.bids.Max()
		if !ok {
			break
		}
		elem, maker := level.front()
		executed := min(*baseQuantity, maker.RemainingBase)
		maker.Reduce(executed)
		*baseQuantity -= executed

		executions = append(executions, model.Execution{
			BuyOrderID:         maker.OrderID,
			SellOrderID:        takerID,
			Quantity:           executed,
			ExecutionPrice:     price,
			BuyOrderLimitPrice: maker.LimitPrice,
			BuyFilled:          maker.Filled(),
			SellFilled:         *baseQuantity == 0,
		})

		ob.removeIfFilled(ob.bids, price, level, elem, maker)
	}
	return executions
}

// removeIfFilled drops a fully filled maker from its level and the
// index, then drops the level from the ladder if it emptied.
func (ob *OrderBook) removeIfFilled(ladder *btree.Map[model.Price, *priceLevel], price model.Price, level *priceLevel, elem *list.Element, maker *model.RestingOrder) {
	if maker.Filled() {
		level.orders.Remove(elem)
		delete(ob.index, maker.OrderID)
	}
	if level.orders.Len() == 0 {
		ladder.Delete(price)
	}
}

// InsertResting appends order to the tail of its price level, creating
// the level if needed, and registers it in the index. New orders at an
// existing price always queue behind older ones.
func (ob *OrderBook) InsertResting(side model.Side, order model.RestingOrder) {
	if order.RemainingBase <= 0 || order.LimitPrice <= 0 {
		ob.logger.Panic("refusing to rest an invalid order",
			zap.Uint64("order_id", uint64(order.OrderID)),
			zap.Int64("price", order.LimitPrice),
			zap.Int64("remaining", order.RemainingBase))
	}
	if _, dup := ob.index[order.OrderID]; dup {
		ob.logger.Panic("order id already rests in the book",
			zap.Uint64("order_id", uint64(order.OrderID)))
	}

	ladder := ob.asks
	if side == model.SideBuy {
		ladder = ob.bids
	}
	level, ok := ladder.Get(order.LimitPrice)
	if !ok {
		level = newPriceLevel()
		ladder.Set(order.LimitPrice, level)
	}
	resting := order
	elem := level.orders.PushBack(&resting)
	ob.index[order.OrderID] = orderLocation{side: side, price: order.LimitPrice, elem: elem}
}

// Cancel removes the order with the given id from the book. The second
// return is false if the id is not resting here.
func (ob *OrderBook) Cancel(orderID model.OrderID) (model.CancelResult, bool) {
	loc, ok := ob.index[orderID]
	if !ok {
		return model.CancelResult{}, false
	}
	order := loc.elem.Value.(*model.RestingOrder)
	result := model.CancelResult{
		OrderID:   orderID,
		Side:      loc.side,
		Price:     loc.price,
		Remaining: order.RemainingBase,
	}

	ladder := ob.asks
	if loc.side == model.SideBuy {
		ladder = ob.bids
	}
	level, found := ladder.Get(loc.price)
	if !found {
		ob.logger.Panic("index entry points at a missing price level",
			zap.Uint64("order_id", uint64(orderID)),
			zap.Int64("price", loc.price))
	}
	level.orders.Remove(loc.elem)
	if level.orders.Len() == 0 {
		ladder.Delete(loc.price)
	}
	delete(ob.index, orderID)
	return result, true
}

// BestBid returns the highest bid price, or false on an empty side.
func (ob *OrderBook) BestBid() (model.Price, bool) {
	price, _, ok := ob.bids.Max()
	return price, ok
}

// BestAsk returns the lowest ask price, or false on an empty side.
func (ob *OrderBook) BestAsk() (model.Price, bool) {
	price, _, ok := ob.asks.Min()
	return price, ok
}

// OrdersCount returns the number of resting orders.
func (ob *OrderBook) OrdersCount() int { return len(ob.index) }

// RestingVolume sums the remaining base quantity attributed to orderID,
// zero if the order is not resting. Used by invariant checks.
func (ob *OrderBook) RestingVolume(orderID model.OrderID) model.Quantity {
	loc, ok := ob.index[orderID]
	if !ok {
		return 0
	}
	return loc.elem.Value.(*model.RestingOrder).RemainingBase
}

// Level is one rung of a depth snapshot.
type Level struct {
	Price  model.Price
	Volume model.Quantity
}

// Snapshot returns up to depth levels per side, bids descending and
// asks ascending, with per-level volume aggregated over the resting
// orders.
func (ob *OrderBook) Snapshot(depth int) (bids, asks []Level) {
	ob.bids.Reverse(func(price model.Price, level *priceLevel) bool {
		bids = append(bids, Level{Price: price, Volume: levelVolume(level)})
		return len(bids) < depth
	})
	ob.asks.Scan(func(price model.Price, level *priceLevel) bool {
		asks = append(asks, Level{Price: price, Volume: levelVolume(level)})
		return len(asks) < depth
	})
	return bids, asks
}

func levelVolume(level *priceLevel) model.Quantity {
	var total model.Quantity
	for e := level.orders.Front(); e != nil; e = e.Next() {
		total += e.Value.(*model.RestingOrder).RemainingBase
	}
	return total
}

// checkIndex walks both ladders and verifies that every resting order
// has exactly one index entry resolving back to it. Exposed to tests
// through an export_test shim.
func (ob *OrderBook) checkIndex() bool {
	seen := 0
	consistent := true
	walk := func(side model.Side) func(price model.Price, level *priceLevel) bool {
		return func(price model.Price, level *priceLevel) bool {
			for e := level.orders.Front(); e != nil; e = e.Next() {
				seen++
				order := e.Value.(*model.RestingOrder)
				loc, ok := ob.index[order.OrderID]
				if !ok || loc.side != side || loc.price != price || loc.elem != e {
					consistent = false
					return false
				}
			}
			return true
		}
	}
	ob.bids.Scan(walk(model.SideBuy))
	ob.asks.Scan(walk(model.SideSell))
	return consistent && seen == len(ob.index)
}

func min(a, b model.Quantity) model.Quantity {
	if a < b {
		return a
	}
	return b
}
