package exchange

import (
	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/trading/model"
	"github.com/helios-exchange/helios/pkg/metrics"
)

// OrderPlacement is the immediate outcome of an order submission.
// Filled and Remaining are in base units for limit and market-sell
// orders; for market buys they are in quote units, tracking how much
// of the budget was spent and how much came back.
type OrderPlacement struct {
	OrderID   model.OrderID
	Filled    model.Quantity
	Remaining model.Quantity
}

// CancelOutcome reports what a cancel removed from the book.
type CancelOutcome struct {
	OrderID   model.OrderID
	Side      model.Side
	Remaining model.Quantity
}

// PlaceLimitOrder validates, reserves and submits a limit order.
// Buys reserve price*quantity of the quote asset, sells reserve
// quantity of the base asset. Any crossing liquidity is settled before
// the call returns; a non-zero remainder rests on the book with its
// reservation intact.
func (ex *Exchange) PlaceLimitOrder(userID model.UserID, market model.Market, side model.Side, price model.Price, quantity model.Quantity) (OrderPlacement, error) {
	if !userID.Valid() {
		return OrderPlacement{}, ErrUserNotFound
	}
	if !ex.engine.HasMarket(market) {
		return OrderPlacement{}, ErrMarketNotListed
	}
	if quantity <= 0 {
		return OrderPlacement{}, ErrInvalidQuantity
	}
	wallet, err := ex.walletOf(userID)
	if err != nil {
		return OrderPlacement{}, err
	}
	if price <= 0 {
		return OrderPlacement{}, ErrInvalidAmount
	}
	if model.MulOverflows(price, quantity) {
		ex.logger.Panic("limit order notional overflows int64",
			zap.Int64("price", price), zap.Int64("quantity", quantity))
	}

	if side == model.SideBuy {
		err = wallet.Reserve(market.Quote, price*quantity)
	} else {
		err = wallet.Reserve(market.Base, quantity)
	}
	if err != nil {
		return OrderPlacement{}, ErrInsufficientFunds
	}

	orderID := ex.orderIDs.Next()
	// Registered before matching so that settlement resolves the taker
	// the same way it resolves makers.
	ex.orderOwner[orderID] = userID
	ex.orderMarket[orderID] = market

	executions, remaining := ex.engine.Submit(model.LimitOrderRequest{
		ID:           orderID,
		UserID:       userID,
		Market:       market,
		Side:         side,
		LimitPrice:   price,
		BaseQuantity: quantity,
	})
	for _, exec := range executions {
		ex.settleExecution(market, exec)
	}

	metrics.OrdersPlaced.WithLabelValues(market.String(), side.String()).Inc()
	ex.logger.Info("limit order placed",
		zap.Uint64("order_id", uint64(orderID)),
		zap.Uint64("user_id", uint64(userID)),
		zap.String("market", market.String()),
		zap.String("side", side.String()),
		zap.Int64("price", price),
		zap.Int64("quantity", quantity),
		zap.Int64("remaining", remaining))

	return OrderPlacement{
		OrderID:   orderID,
		Filled:    quantity - remaining,
		Remaining: remaining,
	}, nil
}

// ExecuteMarketOrder validates, reserves and submits a market order.
// A buy spends quantity as a quote budget; a sell offers quantity base
// units. Market orders never rest: whatever the book could not fill is
// released back to the free balance before the call returns.
func (ex *Exchange) ExecuteMarketOrder(userID model.UserID, market model.Market, side model.Side, quantity model.Quantity) (OrderPlacement, error) {
	if !userID.Valid() {
		return OrderPlacement{}, ErrUserNotFound
	}
	if !ex.engine.HasMarket(market) {
		return OrderPlacement{}, ErrMarketNotListed
	}
	if quantity <= 0 {
		return OrderPlacement{}, ErrInvalidQuantity
	}
	wallet, err := ex.walletOf(userID)
	if err != nil {
		return OrderPlacement{}, err
	}

	reserveAsset := market.Base
	if side == model.SideBuy {
		reserveAsset = market.Quote
	}
	if err := wallet.Reserve(reserveAsset, quantity); err != nil {
		return OrderPlacement{}, ErrInsufficientFunds
	}

	orderID := ex.orderIDs.Next()
	ex.orderOwner[orderID] = userID
	ex.orderMarket[orderID] = market

	var req model.OrderRequest
	if side == model.SideBuy {
		req = model.MarketBuyByQuoteRequest{ID: orderID, UserID: userID, Market: market, QuoteBudget: quantity}
	} else {
		req = model.MarketSellByBaseRequest{ID: orderID, UserID: userID, Market: market, BaseQuantity: quantity}
	}
	executions, remaining := ex.engine.Submit(req)
	for _, exec := range executions {
		ex.settleExecution(market, exec)
	}

	// The unfilled part of the reservation goes back to the free
	// balance; market orders hold nothing after the call.
	if remaining > 0 {
		if err := wallet.Release(reserveAsset, remaining); err != nil {
			ex.logger.Panic("releasing market order remainder failed",
				zap.Uint64("order_id", uint64(orderID)),
				zap.String("asset", reserveAsset.String()),
				zap.Int64("remaining", remaining),
				zap.Error(err))
		}
	}
	delete(ex.orderOwner, orderID)
	delete(ex.orderMarket, orderID)

	metrics.OrdersPlaced.WithLabelValues(market.String(), side.String()).Inc()
	ex.logger.Info("market order executed",
		zap.Uint64("order_id", uint64(orderID)),
		zap.Uint64("user_id", uint64(userID)),
		zap.String("market", market.String()),
		zap.String("side", side.String()),
		zap.Int64("quantity", quantity),
		zap.Int64("remaining", remaining))

	return OrderPlacement{
		OrderID:   orderID,
		Filled:    quantity - remaining,
		Remaining: remaining,
	}, nil
}

// CancelOrder removes userID's resting order from the book and returns
// its remaining reservation to the free balance.
func (ex *Exchange) CancelOrder(userID model.UserID, orderID model.OrderID) (CancelOutcome, error) {
	if !userID.Valid() || !ex.UserExists(userID) {
		return CancelOutcome{}, ErrUserNotFound
	}
	market, ok := ex.orderMarket[orderID]
	if !ok {
		return CancelOutcome{}, ErrOrderNotFound
	}
	if ex.orderOwner[orderID] != userID {
		return CancelOutcome{}, ErrNotOrderOwner
	}

	result, removed := ex.engine.Cancel(market, orderID)
	if !removed {
		// Registry entries only exist for resting orders.
		ex.logger.Panic("registered order missing from its book",
			zap.Uint64("order_id", uint64(orderID)),
			zap.String("market", market.String()))
	}

	wallet, walletOK := ex.wallets.WalletFor(userID)
	if !walletOK {
		ex.logger.Panic("order owner has no wallet",
			zap.Uint64("user_id", uint64(userID)))
	}
	var err error
	if result.Side == model.SideBuy {
		err = wallet.Release(market.Quote, result.Remaining*result.Price)
	} else {
		err = wallet.Release(market.Base, result.Remaining)
	}
	if err != nil {
		ex.logger.Panic("releasing canceled order reservation failed",
			zap.Uint64("order_id", uint64(orderID)),
			zap.Error(err))
	}

	delete(ex.orderOwner, orderID)
	delete(ex.orderMarket, orderID)

	metrics.OrdersCancelled.WithLabelValues(market.String()).Inc()
	ex.logger.Info("order canceled",
		zap.Uint64("order_id", uint64(orderID)),
		zap.Uint64("user_id", uint64(userID)),
		zap.String("side", result.Side.String()),
		zap.Int64("remaining", result.Remaining))

	return CancelOutcome{OrderID: orderID, Side: result.Side, Remaining: result.Remaining}, nil
}

// settleExecution moves funds for one execution and records the trade.
// By the time an execution exists the funds it moves are reserved, so
// every wallet failure here is corrupted state and aborts the process.
func (ex *Exchange) settleExecution(market model.Market, exec model.Execution) {
	buyer, buyerKnown := ex.orderOwner[exec.BuyOrderID]
	seller, sellerKnown := ex.orderOwner[exec.SellOrderID]
	if !buyerKnown || !sellerKnown {
		ex.logger.Panic("execution references an unregistered order",
			zap.Uint64("buy_order", uint64(exec.BuyOrderID)),
			zap.Uint64("sell_order", uint64(exec.SellOrderID)))
	}
	buyerWallet, ok := ex.wallets.WalletFor(buyer)
	if !ok {
		ex.logger.Panic("buyer has no wallet", zap.Uint64("user_id", uint64(buyer)))
	}
	sellerWallet, ok := ex.wallets.WalletFor(seller)
	if !ok {
		ex.logger.Panic("seller has no wallet", zap.Uint64("user_id", uint64(seller)))
	}

	cost := exec.ExecutionPrice * exec.Quantity
	if err := buyerWallet.ConsumeReserved(market.Quote, cost); err != nil {
		ex.logger.Panic("consuming buyer reservation failed",
			zap.Uint64("buy_order", uint64(exec.BuyOrderID)), zap.Error(err))
	}
	// The buy side reserved at its own limit; the maker's better price
	// frees the difference immediately.
	if refund := (exec.BuyOrderLimitPrice - exec.ExecutionPrice) * exec.Quantity; refund > 0 {
		if err := buyerWallet.Release(market.Quote, refund); err != nil {
			ex.logger.Panic("releasing price improvement failed",
				zap.Uint64("buy_order", uint64(exec.BuyOrderID)), zap.Error(err))
		}
	}
	if err := buyerWallet.Deposit(market.Base, exec.Quantity); err != nil {
		ex.logger.Panic("crediting buyer failed",
			zap.Uint64("buy_order", uint64(exec.BuyOrderID)), zap.Error(err))
	}
	if err := sellerWallet.ConsumeReserved(market.Base, exec.Quantity); err != nil {
		ex.logger.Panic("consuming seller reservation failed",
			zap.Uint64("sell_order", uint64(exec.SellOrderID)), zap.Error(err))
	}
	if err := sellerWallet.Deposit(market.Quote, cost); err != nil {
		ex.logger.Panic("crediting seller failed",
			zap.Uint64("sell_order", uint64(exec.SellOrderID)), zap.Error(err))
	}

	trade := model.Trade{
		ID:        ex.tradeIDs.Next(),
		BuyUser:   buyer,
		SellUser:  seller,
		BuyOrder:  exec.BuyOrderID,
		SellOrder: exec.SellOrderID,
		Market:    market,
		Quantity:  exec.Quantity,
		Price:     exec.ExecutionPrice,
	}
	ex.history.Add(trade)
	metrics.TradesExecuted.WithLabelValues(market.String()).Inc()

	if exec.BuyFilled {
		delete(ex.orderOwner, exec.BuyOrderID)
		delete(ex.orderMarket, exec.BuyOrderID)
	}
	if exec.SellFilled {
		delete(ex.orderOwner, exec.SellOrderID)
		delete(ex.orderMarket, exec.SellOrderID)
	}
}
