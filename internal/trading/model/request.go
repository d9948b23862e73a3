package model

// OrderRequest is the sum type accepted by the matching engine. The
// three variants replace an order-class hierarchy: market orders never
// rest, so only limit orders ever turn into a RestingOrder.
type OrderRequest interface {
	RequestMarket() Market
	orderRequest()
}

// LimitOrderRequest asks to buy or sell BaseQuantity base units at
// LimitPrice or better; any unfilled remainder rests on the book.
type LimitOrderRequest struct {
	ID           OrderID
	UserID       UserID
	Market       Market
	Side         Side
	LimitPrice   Price
	BaseQuantity Quantity
}

// MarketBuyByQuoteRequest spends up to QuoteBudget quote units against
// the asks. The unspent remainder is returned, never rested.
type MarketBuyByQuoteRequest struct {
	ID          OrderID
	UserID      UserID
	Market      Market
	QuoteBudget Quantity
}

// MarketSellByBaseRequest sells up to BaseQuantity base units against
// the bids. The unsold remainder is returned, never rested.
type MarketSellByBaseRequest struct {
	ID           OrderID
	UserID       UserID
	Market       Market
	BaseQuantity Quantity
}

func (r LimitOrderRequest) RequestMarket() Market       { return r.Market }
func (r MarketBuyByQuoteRequest) RequestMarket() Market { return r.Market }
func (r MarketSellByBaseRequest) RequestMarket() Market { return r.Market }

func (LimitOrderRequest) orderRequest()       {}
func (MarketBuyByQuoteRequest) orderRequest() {}
func (MarketSellByBaseRequest) orderRequest() {}
