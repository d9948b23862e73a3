package model

import (
	"fmt"
	"strings"
)

// Asset is a canonicalized asset symbol. Construction upper-cases the
// symbol, so two assets compare equal regardless of the input casing and
// an Asset can be used directly as a map key.
type Asset string

// NewAsset canonicalizes symbol to upper case. An empty symbol is a
// caller bug: the parser guarantees 3-10 ASCII letters before an Asset
// is ever constructed.
func NewAsset(symbol string) Asset {
	if symbol == "" {
		panic("model: empty asset symbol")
	}
	return Asset(strings.ToUpper(symbol))
}

func (a Asset) String() string { return string(a) }

// Market is an ordered base/quote pair. Identity is the ordered pair:
// BTC/USDT and USDT/BTC are distinct markets.
type Market struct {
	Base  Asset
	Quote Asset
}

// NewMarket builds a market from two distinct assets. Equal base and
// quote is a caller bug, not a runtime condition.
func NewMarket(base, quote Asset) Market {
	if base == quote {
		panic(fmt.Sprintf("model: market base and quote must differ, got %s/%s", base, quote))
	}
	return Market{Base: base, Quote: quote}
}

func (m Market) String() string {
	return string(m.Base) + "/" + string(m.Quote)
}
