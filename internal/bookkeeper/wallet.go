// Package bookkeeper tracks per-user asset balances. Each balance is
// split into a free part and a reserved part; placing an order moves
// funds from free to reserved, settlement consumes reserved funds, and
// cancellation releases them back.
package bookkeeper

import (
	"errors"

	"github.com/helios-exchange/helios/internal/trading/model"
)

var (
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("bookkeeper: amount must be positive")
	// ErrInsufficientFunds is returned when the free balance cannot
	// cover a withdrawal or reservation.
	ErrInsufficientFunds = errors.New("bookkeeper: insufficient funds")
	// ErrInsufficientReserved is returned when the reserved balance
	// cannot cover a release or consume.
	ErrInsufficientReserved = errors.New("bookkeeper: insufficient reserved funds")
)

// Balance is the two-part holding of one asset. Both fields are
// non-negative at all times; a missing asset entry reads as {0, 0}.
type Balance struct {
	Free     model.Quantity
	Reserved model.Quantity
}

// Wallet maps assets to balances for a single user. The zero Wallet is
// not usable; construct with NewWallet.
//
// Every operation either applies fully or leaves the wallet untouched.
type Wallet struct {
	balances map[model.Asset]Balance
}

// NewWallet returns an empty wallet.
func NewWallet() *Wallet {
	return &Wallet{balances: make(map[model.Asset]Balance)}
}

// Deposit adds amount to the free balance, creating the asset entry if
// it does not exist yet.
func (w *Wallet) Deposit(asset model.Asset, amount model.Quantity) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b := w.balances[asset]
	b.Free += amount
	w.balances[asset] = b
	return nil
}

// Withdraw removes amount from the free balance.
func (w *Wallet) Withdraw(asset model.Asset, amount model.Quantity) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b := w.balances[asset]
	if b.Free < amount {
		return ErrInsufficientFunds
	}
	b.Free -= amount
	w.balances[asset] = b
	return nil
}

// Reserve moves amount from free to reserved.
func (w *Wallet) Reserve(asset model.Asset, amount model.Quantity) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b := w.balances[asset]
	if b.Free < amount {
		return ErrInsufficientFunds
	}
	b.Free -= amount
	b.Reserved += amount
	w.balances[asset] = b
	return nil
}

// Release moves amount from reserved back to free.
func (w *Wallet) Release(asset model.Asset, amount model.Quantity) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b := w.balances[asset]
	if b.Reserved < amount {
		return ErrInsufficientReserved
	}
	b.Reserved -= amount
	b.Free += amount
	w.balances[asset] = b
	return nil
}

// ConsumeReserved removes amount from reserved without crediting free:
// the asset leaves this wallet entirely. The counterparty's Deposit is
// the paired operation during settlement.
func (w *Wallet) ConsumeReserved(asset model.Asset, amount model.Quantity) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b := w.balances[asset]
	if b.Reserved < amount {
		return ErrInsufficientReserved
	}
	b.Reserved -= amount
	w.balances[asset] = b
	return nil
}

// FreeBalance returns the free balance of asset, zero for an absent
// entry.
func (w *Wallet) FreeBalance(asset model.Asset) model.Quantity {
	return w.balances[asset].Free
}

// ReservedBalance returns the reserved balance of asset, zero for an
// absent entry.
func (w *Wallet) ReservedBalance(asset model.Asset) model.Quantity {
	return w.balances[asset].Reserved
}

// Assets returns the assets with an entry in the wallet, in no
// particular order. Used by invariant checks in tests.
func (w *Wallet) Assets() []model.Asset {
	out := make([]model.Asset, 0, len(w.balances))
	for a := range w.balances {
		out = append(out, a)
	}
	return out
}
