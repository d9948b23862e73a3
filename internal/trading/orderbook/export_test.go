package orderbook

// CheckIndex exposes the index consistency walk to tests.
func (ob *OrderBook) CheckIndex() bool { return ob.checkIndex() }
