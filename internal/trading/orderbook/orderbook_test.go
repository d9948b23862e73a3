package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/helios-exchange/helios/internal/trading/model"
)

func newTestBook(t *testing.T) *OrderBook {
	t.Helper()
	market := model.NewMarket("BTC", "USDT")
	return New(market, zaptest.NewLogger(t))
}

func rest(ob *OrderBook, side model.Side, id model.OrderID, price model.Price, qty model.Quantity) {
	ob.InsertResting(side, model.RestingOrder{
		OrderID:       id,
		LimitPrice:    price,
		InitialBase:   qty,
		RemainingBase: qty,
	})
}

func TestEmptyBookHasNoBestPrices(t *testing.T) {
	ob := newTestBook(t)

	_, ok := ob.BestBid()
	assert.False(t, ok)
	_, ok = ob.BestAsk()
	assert.False(t, ok)
	assert.Zero(t, ob.OrdersCount())
}

func TestLimitBuyMatchesBestAskFirst(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 101, 5)
	rest(ob, model.SideSell, 2, 100, 5)

	remaining := model.Quantity(5)
	execs := ob.MatchLimitBuy(10, 101, &remaining)

	require.Len(t, execs, 1)
	assert.EqualValues(t, 2, execs[0].SellOrderID)
	assert.EqualValues(t, 100, execs[0].ExecutionPrice)
	assert.EqualValues(t, 101, execs[0].BuyOrderLimitPrice)
	assert.True(t, execs[0].BuyFilled)
	assert.True(t, execs[0].SellFilled)
	assert.Zero(t, remaining)

	best, ok := ob.BestAsk()
	require.True(t, ok)
	assert.EqualValues(t, 101, best)
	assert.True(t, ob.CheckIndex())
}

func TestLimitBuyStopsAtLimitPrice(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 100, 2)
	rest(ob, model.SideSell, 2, 105, 2)

	remaining := model.Quantity(4)
	execs := ob.MatchLimitBuy(10, 102, &remaining)

	require.Len(t, execs, 1)
	assert.EqualValues(t, 2, execs[0].Quantity)
	assert.False(t, execs[0].BuyFilled)
	assert.EqualValues(t, 2, remaining)
}

func TestFIFOWithinPriceLevel(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 100, 3)
	rest(ob, model.SideSell, 2, 100, 3)
	rest(ob, model.SideSell, 3, 100, 3)

	remaining := model.Quantity(5)
	execs := ob.MatchLimitBuy(10, 100, &remaining)

	require.Len(t, execs, 2)
	assert.EqualValues(t, 1, execs[0].SellOrderID)
	assert.EqualValues(t, 3, execs[0].Quantity)
	assert.True(t, execs[0].SellFilled)
	assert.EqualValues(t, 2, execs[1].SellOrderID)
	assert.EqualValues(t, 2, execs[1].Quantity)
	assert.False(t, execs[1].SellFilled)

	// Order 2 keeps its queue position ahead of order 3.
	remaining = 4
	execs = ob.MatchLimitBuy(11, 100, &remaining)
	require.Len(t, execs, 2)
	assert.EqualValues(t, 2, execs[0].SellOrderID)
	assert.EqualValues(t, 3, execs[1].SellOrderID)
	assert.True(t, ob.CheckIndex())
}

func TestLimitSellMatchesHighestBidFirst(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 98, 4)
	rest(ob, model.SideBuy, 2, 99, 4)

	remaining := model.Quantity(6)
	execs := ob.MatchLimitSell(10, 98, &remaining)

	require.Len(t, execs, 2)
	assert.EqualValues(t, 2, execs[0].BuyOrderID)
	assert.EqualValues(t, 99, execs[0].ExecutionPrice)
	assert.EqualValues(t, 99, execs[0].BuyOrderLimitPrice)
	assert.EqualValues(t, 1, execs[1].BuyOrderID)
	assert.EqualValues(t, 98, execs[1].ExecutionPrice)
	assert.EqualValues(t, 2, execs[1].Quantity)
	assert.True(t, execs[1].SellFilled)
	assert.Zero(t, remaining)
}

func TestLimitSellStopsBelowLimit(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 95, 5)

	remaining := model.Quantity(5)
	execs := ob.MatchLimitSell(10, 96, &remaining)

	assert.Empty(t, execs)
	assert.EqualValues(t, 5, remaining)
}

func TestMarketBuySpendsBudgetAcrossLevels(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 100, 2)
	rest(ob, model.SideSell, 2, 101, 5)

	budget := model.Quantity(402)
	execs := ob.MatchMarketBuyByQuote(10, &budget)

	require.Len(t, execs, 2)
	assert.EqualValues(t, 2, execs[0].Quantity)
	assert.EqualValues(t, 100, execs[0].ExecutionPrice)
	assert.EqualValues(t, 2, execs[1].Quantity)
	assert.EqualValues(t, 101, execs[1].ExecutionPrice)
	assert.True(t, execs[1].BuyFilled)
	assert.Zero(t, budget)
}

func TestMarketBuyStopsOnIndivisibleRemainder(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 100, 5)

	budget := model.Quantity(250)
	execs := ob.MatchMarketBuyByQuote(10, &budget)

	// 250/100 buys two units; the residual 50 cannot buy a third.
	require.Len(t, execs, 1)
	assert.EqualValues(t, 2, execs[0].Quantity)
	assert.False(t, execs[0].BuyFilled)
	assert.EqualValues(t, 50, budget)
	assert.EqualValues(t, 3, ob.RestingVolume(1))
}

func TestMarketBuyOnEmptyBook(t *testing.T) {
	ob := newTestBook(t)

	budget := model.Quantity(1000)
	execs := ob.MatchMarketBuyByQuote(10, &budget)

	assert.Empty(t, execs)
	assert.EqualValues(t, 1000, budget)
}

func TestMarketSellConsumesBidsWithoutPriceBound(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 99, 2)
	rest(ob, model.SideBuy, 2, 50, 2)

	remaining := model.Quantity(5)
	execs := ob.MatchMarketSellByBase(10, &remaining)

	require.Len(t, execs, 2)
	assert.EqualValues(t, 99, execs[0].ExecutionPrice)
	assert.EqualValues(t, 50, execs[1].ExecutionPrice)
	assert.EqualValues(t, 1, remaining)
	assert.Zero(t, ob.OrdersCount())
}

func TestCancelRemovesOrderAndLevel(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 99, 4)
	rest(ob, model.SideBuy, 2, 98, 4)

	result, ok := ob.Cancel(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, result.OrderID)
	assert.Equal(t, model.SideBuy, result.Side)
	assert.EqualValues(t, 99, result.Price)
	assert.EqualValues(t, 4, result.Remaining)

	best, ok := ob.BestBid()
	require.True(t, ok)
	assert.EqualValues(t, 98, best)
	assert.True(t, ob.CheckIndex())

	_, ok = ob.Cancel(1)
	assert.False(t, ok)
}

func TestCancelMiddleOfLevelKeepsOrderOfOthers(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideSell, 1, 100, 1)
	rest(ob, model.SideSell, 2, 100, 1)
	rest(ob, model.SideSell, 3, 100, 1)

	_, ok := ob.Cancel(2)
	require.True(t, ok)

	remaining := model.Quantity(2)
	execs := ob.MatchLimitBuy(10, 100, &remaining)
	require.Len(t, execs, 2)
	assert.EqualValues(t, 1, execs[0].SellOrderID)
	assert.EqualValues(t, 3, execs[1].SellOrderID)
	assert.True(t, ob.CheckIndex())
}

func TestInsertRestingRejectsDuplicatesAndInvalid(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 99, 4)

	assert.Panics(t, func() { rest(ob, model.SideBuy, 1, 99, 4) })
	assert.Panics(t, func() { rest(ob, model.SideBuy, 2, 0, 4) })
	assert.Panics(t, func() { rest(ob, model.SideBuy, 2, 99, 0) })
}

func TestSnapshotAggregatesPerLevel(t *testing.T) {
	ob := newTestBook(t)
	rest(ob, model.SideBuy, 1, 99, 4)
	rest(ob, model.SideBuy, 2, 99, 1)
	rest(ob, model.SideBuy, 3, 97, 2)
	rest(ob, model.SideSell, 4, 101, 3)

	bids, asks := ob.Snapshot(10)
	require.Len(t, bids, 2)
	assert.Equal(t, Level{Price: 99, Volume: 5}, bids[0])
	assert.Equal(t, Level{Price: 97, Volume: 2}, bids[1])
	require.Len(t, asks, 1)
	assert.Equal(t, Level{Price: 101, Volume: 3}, asks[0])

	bids, _ = ob.Snapshot(1)
	assert.Len(t, bids, 1)
}
