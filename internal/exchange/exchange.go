// Package exchange is the settlement coordinator: it turns user-facing
// commands into matching engine calls, reserves funds before matching,
// settles every execution against both wallets and keeps the open-order
// registry consistent with the book and the reservations.
package exchange

import (
	"errors"

	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/bookkeeper"
	"github.com/helios-exchange/helios/internal/trading/engine"
	"github.com/helios-exchange/helios/internal/trading/history"
	"github.com/helios-exchange/helios/internal/trading/model"
	"github.com/helios-exchange/helios/pkg/metrics"
)

// Exchange aggregates all mutable state of the system: users, wallets,
// the matching engine, the trade history and the open-order registry.
// It is single-threaded; callers serialize all mutation.
//
// The open-order registry, the book index and the wallet reservations
// form the consistency triangle: every path that mutates one of them
// mutates the other two before returning.
type Exchange struct {
	logger *zap.Logger

	users   map[model.UserID]model.User
	wallets *bookkeeper.Service
	engine  *engine.Engine
	history *history.TradeHistory

	// Open-order registry. Populated before a request reaches the
	// engine so taker-initiated fills settle uniformly, torn down on
	// full fill or cancel.
	orderOwner  map[model.OrderID]model.UserID
	orderMarket map[model.OrderID]model.Market

	userIDs  model.IDGenerator[model.UserID]
	orderIDs model.IDGenerator[model.OrderID]
	tradeIDs model.IDGenerator[model.TradeID]
}

// New creates an exchange with no users and no markets.
func New(logger *zap.Logger) *Exchange {
	return &Exchange{
		logger:      logger,
		users:       make(map[model.UserID]model.User),
		wallets:     bookkeeper.NewService(logger),
		engine:      engine.New(logger),
		history:     history.New(),
		orderOwner:  make(map[model.OrderID]model.UserID),
		orderMarket: make(map[model.OrderID]model.Market),
	}
}

// CreateUser allocates a fresh user id and creates the user together
// with an empty wallet.
func (ex *Exchange) CreateUser(name string) (model.UserID, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	id := ex.userIDs.Next()
	if _, exists := ex.users[id]; exists {
		return 0, ErrUserAlreadyExists
	}
	ex.users[id] = model.User{ID: id, Name: name}

	// The paired wallet insertion must succeed; the wallet service
	// aborts the process on a collision.
	ex.wallets.CreateWallet(id)

	ex.logger.Info("user created", zap.Uint64("user_id", uint64(id)), zap.String("name", name))
	return id, nil
}

// UserName returns the display name of userID.
func (ex *Exchange) UserName(userID model.UserID) (string, error) {
	user, ok := ex.users[userID]
	if !ok {
		return "", ErrUserNotFound
	}
	return user.Name, nil
}

// UserExists reports whether userID names a known user.
func (ex *Exchange) UserExists(userID model.UserID) bool {
	_, ok := ex.users[userID]
	return ok
}

// walletOf resolves userID's wallet, mapping a missing wallet to
// ErrUserNotFound.
func (ex *Exchange) walletOf(userID model.UserID) (*bookkeeper.Wallet, error) {
	w, ok := ex.wallets.WalletFor(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return w, nil
}

// translateWalletErr maps bookkeeper errors onto the exchange's wallet
// operation taxonomy.
func translateWalletErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookkeeper.ErrInvalidAmount):
		return ErrInvalidQuantity
	case errors.Is(err, bookkeeper.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, bookkeeper.ErrInsufficientReserved):
		return ErrInsufficientReserved
	default:
		return err
	}
}

// Deposit credits quantity of asset to userID's free balance.
func (ex *Exchange) Deposit(userID model.UserID, asset model.Asset, quantity model.Quantity) error {
	w, err := ex.walletOf(userID)
	if err != nil {
		return err
	}
	if err := translateWalletErr(w.Deposit(asset, quantity)); err != nil {
		return err
	}
	metrics.Deposits.WithLabelValues(asset.String()).Inc()
	return nil
}

// Withdraw debits quantity of asset from userID's free balance.
func (ex *Exchange) Withdraw(userID model.UserID, asset model.Asset, quantity model.Quantity) error {
	w, err := ex.walletOf(userID)
	if err != nil {
		return err
	}
	if err := translateWalletErr(w.Withdraw(asset, quantity)); err != nil {
		return err
	}
	metrics.Withdrawals.WithLabelValues(asset.String()).Inc()
	return nil
}

// Reserve moves quantity of asset from free to reserved in userID's
// wallet.
func (ex *Exchange) Reserve(userID model.UserID, asset model.Asset, quantity model.Quantity) error {
	w, err := ex.walletOf(userID)
	if err != nil {
		return err
	}
	return translateWalletErr(w.Reserve(asset, quantity))
}

// Release moves quantity of asset from reserved back to free in
// userID's wallet.
func (ex *Exchange) Release(userID model.UserID, asset model.Asset, quantity model.Quantity) error {
	w, err := ex.walletOf(userID)
	if err != nil {
		return err
	}
	return translateWalletErr(w.Release(asset, quantity))
}

// FreeBalance returns userID's free balance of asset.
func (ex *Exchange) FreeBalance(userID model.UserID, asset model.Asset) (model.Quantity, error) {
	w, err := ex.walletOf(userID)
	if err != nil {
		return 0, err
	}
	return w.FreeBalance(asset), nil
}

// ReservedBalance returns userID's reserved balance of asset.
func (ex *Exchange) ReservedBalance(userID model.UserID, asset model.Asset) (model.Quantity, error) {
	w, err := ex.walletOf(userID)
	if err != nil {
		return 0, err
	}
	return w.ReservedBalance(asset), nil
}

// RegisterMarket lists a new market on the engine.
func (ex *Exchange) RegisterMarket(market model.Market) error {
	if err := ex.engine.RegisterMarket(market); err != nil {
		if errors.Is(err, engine.ErrMarketExists) {
			return ErrMarketAlreadyListed
		}
		return err
	}
	return nil
}

// MarketListed reports whether market is registered.
func (ex *Exchange) MarketListed(market model.Market) bool {
	return ex.engine.HasMarket(market)
}

// BestBid returns the top bid of market, or false on an empty side.
func (ex *Exchange) BestBid(market model.Market) (model.Price, bool) {
	return ex.engine.BestBid(market)
}

// BestAsk returns the top ask of market, or false on an empty side.
func (ex *Exchange) BestAsk(market model.Market) (model.Price, bool) {
	return ex.engine.BestAsk(market)
}

// MarketHistory returns the settled trades of market in settlement
// order.
func (ex *Exchange) MarketHistory(market model.Market) []model.Trade {
	return ex.history.MarketHistory(market)
}

// Wallets exposes the wallet registry to invariant checks in tests.
func (ex *Exchange) Wallets() *bookkeeper.Service { return ex.wallets }

// Engine exposes the matching engine to invariant checks in tests.
func (ex *Exchange) Engine() *engine.Engine { return ex.engine }
