package model

import "sync/atomic"

// Strongly typed identifiers. The zero value is reserved as
// "invalid/default" for all three kinds; a valid id is always positive.
type (
	UserID  uint64
	OrderID uint64
	TradeID uint64
)

func (id UserID) Valid() bool  { return id != 0 }
func (id OrderID) Valid() bool { return id != 0 }
func (id TradeID) Valid() bool { return id != 0 }

// IDGenerator hands out strictly increasing positive identifiers.
// Ids are never reused within a process lifetime.
type IDGenerator[T ~uint64] struct {
	counter atomic.Uint64
}

// Next returns the next identifier. The first value returned is 1, so a
// generator never produces the invalid zero id.
func (g *IDGenerator[T]) Next() T {
	return T(g.counter.Add(1))
}

// User is an account holder. Name is non-empty at creation; the
// settlement coordinator enforces this before allocating an id.
type User struct {
	ID   UserID
	Name string
}
