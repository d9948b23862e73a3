package exchange

import "errors"

// User errors.
var (
	ErrUserNotFound      = errors.New("exchange: user not found")
	ErrUserAlreadyExists = errors.New("exchange: user already exists")
	ErrEmptyName         = errors.New("exchange: empty user name")
)

// Wallet operation errors. Internal bookkeeper errors are translated to
// these; the bookkeeper's own types never cross this boundary.
var (
	ErrInvalidQuantity      = errors.New("exchange: invalid quantity")
	ErrInsufficientFunds    = errors.New("exchange: insufficient funds")
	ErrInsufficientReserved = errors.New("exchange: insufficient reserved funds")
)

// Order placement and cancellation errors.
var (
	ErrInvalidAmount  = errors.New("exchange: invalid amount")
	ErrMarketNotListed = errors.New("exchange: market not listed")
	ErrOrderNotFound  = errors.New("exchange: order not found")
	ErrNotOrderOwner  = errors.New("exchange: order belongs to another user")
)

// Market registration errors.
var ErrMarketAlreadyListed = errors.New("exchange: market already listed")
