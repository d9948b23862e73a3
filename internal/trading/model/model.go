// Package model holds the core value types shared by the order book,
// the matching engine and the settlement coordinator: identifiers,
// assets and markets, order requests, executions and trades.
//
// All monetary values are int64 in smallest units. There are no
// fractional prices or quantities anywhere in the system.
package model

import "fmt"

// Price is a price in the smallest quote unit per one base unit.
type Price = int64

// Quantity is an amount in smallest units of whichever asset the
// context dictates (base for limit and market-sell orders, quote for
// market-buy budgets).
type Quantity = int64

// Side of an order.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// RestingOrder is the in-book representation of a live limit order.
// The side that owns it is carried by its location in the book, not by
// the order itself.
type RestingOrder struct {
	OrderID       OrderID
	LimitPrice    Price
	InitialBase   Quantity
	RemainingBase Quantity
}

// Reduce consumes executed base units from the order's remainder.
// Reducing by a non-positive amount or past zero is a matching bug.
func (r *RestingOrder) Reduce(executed Quantity) {
	if executed <= 0 || executed > r.RemainingBase {
		panic(fmt.Sprintf("model: invalid reduction %d of resting order %d (remaining %d)",
			executed, r.OrderID, r.RemainingBase))
	}
	r.RemainingBase -= executed
}

// Filled reports whether the order has no remainder left.
func (r *RestingOrder) Filled() bool { return r.RemainingBase == 0 }

// Execution is one matched trade between exactly two orders.
// ExecutionPrice is always the maker's resting limit price; the taker
// receives any price improvement. BuyOrderLimitPrice is the limit the
// buy side order was reserved against and is what the settlement layer
// uses to compute the improvement refund.
type Execution struct {
	BuyOrderID         OrderID
	SellOrderID        OrderID
	Quantity           Quantity
	ExecutionPrice     Price
	BuyOrderLimitPrice Price
	BuyFilled          bool
	SellFilled         bool
}

// CancelResult reports what was removed from the book by a cancel.
type CancelResult struct {
	OrderID   OrderID
	Side      Side
	Price     Price
	Remaining Quantity
}

// Trade is the immutable settlement record of one execution.
type Trade struct {
	ID        TradeID
	BuyUser   UserID
	SellUser  UserID
	BuyOrder  OrderID
	SellOrder OrderID
	Market    Market
	Quantity  Quantity
	Price     Price
}

// MulOverflows reports whether p*q does not fit in 63 bits. Both
// operands are expected to be positive; overflow is a precondition
// violation for callers, not a recoverable error.
func MulOverflows(p Price, q Quantity) bool {
	if p <= 0 || q <= 0 {
		return false
	}
	const maxInt64 = int64(^uint64(0) >> 1)
	return p > maxInt64/q
}
