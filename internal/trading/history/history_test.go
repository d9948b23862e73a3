package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-exchange/helios/internal/trading/model"
)

func TestHistoryKeepsInsertionOrderPerMarket(t *testing.T) {
	h := New()
	btcusdt := model.NewMarket("BTC", "USDT")
	ethusdt := model.NewMarket("ETH", "USDT")

	h.Add(model.Trade{ID: 1, Market: btcusdt, Quantity: 1, Price: 100})
	h.Add(model.Trade{ID: 2, Market: ethusdt, Quantity: 2, Price: 50})
	h.Add(model.Trade{ID: 3, Market: btcusdt, Quantity: 3, Price: 101})

	trades := h.MarketHistory(btcusdt)
	require.Len(t, trades, 2)
	assert.EqualValues(t, 1, trades[0].ID)
	assert.EqualValues(t, 3, trades[1].ID)

	assert.Len(t, h.MarketHistory(ethusdt), 1)
}

func TestHistoryUnknownMarketIsEmpty(t *testing.T) {
	h := New()

	assert.Empty(t, h.MarketHistory(model.NewMarket("BTC", "USDT")))
}

func TestHistoryReturnsACopy(t *testing.T) {
	h := New()
	btcusdt := model.NewMarket("BTC", "USDT")
	h.Add(model.Trade{ID: 1, Market: btcusdt, Quantity: 1, Price: 100})

	trades := h.MarketHistory(btcusdt)
	trades[0].Price = 999

	assert.EqualValues(t, 100, h.MarketHistory(btcusdt)[0].Price)
}
