package cli

import "github.com/helios-exchange/helios/internal/trading/model"

// AppErrorCode is the single user-visible error enum. Every recoverable
// failure of a command maps onto exactly one of these.
type AppErrorCode int

const (
	CodeInvalidInput AppErrorCode = iota
	CodeUserNotFound
	CodeUserAlreadyExists
	CodeEmptyName
	CodeMarketNotListed
	CodeMarketAlreadyListed
	CodeInsufficientFunds
	CodeInsufficientReserved
	CodeInvalidAmount
	CodeInvalidQuantity
	CodeOrderNotFound
	CodeNotOrderOwner
	CodeInternalError
)

func (c AppErrorCode) String() string {
	switch c {
	case CodeInvalidInput:
		return "InvalidInput"
	case CodeUserNotFound:
		return "UserNotFound"
	case CodeUserAlreadyExists:
		return "UserAlreadyExists"
	case CodeEmptyName:
		return "EmptyName"
	case CodeMarketNotListed:
		return "MarketNotListed"
	case CodeMarketAlreadyListed:
		return "MarketAlreadyListed"
	case CodeInsufficientFunds:
		return "InsufficientFunds"
	case CodeInsufficientReserved:
		return "InsufficientReserved"
	case CodeInvalidAmount:
		return "InvalidAmount"
	case CodeInvalidQuantity:
		return "InvalidQuantity"
	case CodeOrderNotFound:
		return "OrderNotFound"
	case CodeNotOrderOwner:
		return "NotOrderOwner"
	case CodeInternalError:
		return "InternalError"
	default:
		return "InternalError"
	}
}

// Result is the sum type of dispatch outcomes, one variant per success
// case plus AppError.
type Result interface {
	result()
}

type ExitRequested struct{}

type HelpRequested struct{}

type UserCreated struct {
	UserID model.UserID
	Name   string
}

type UserRead struct {
	UserID model.UserID
	Name   string
}

type DepositDone struct {
	UserID model.UserID
	Asset  model.Asset
	Amount model.Quantity
}

type WithdrawDone struct {
	UserID model.UserID
	Asset  model.Asset
	Amount model.Quantity
}

type FreeBalanceRead struct {
	UserID model.UserID
	Asset  model.Asset
	Free   model.Quantity
}

type ReservedBalanceRead struct {
	UserID   model.UserID
	Asset    model.Asset
	Reserved model.Quantity
}

type LimitOrderPlaced struct {
	OrderID   model.OrderID
	Filled    model.Quantity
	Remaining model.Quantity
}

type MarketOrderExecuted struct {
	OrderID   model.OrderID
	Filled    model.Quantity
	Remaining model.Quantity
}

type OrderCanceled struct {
	OrderID   model.OrderID
	Side      model.Side
	Remaining model.Quantity
}

type MarketRegistered struct {
	Market model.Market
}

// AppError is the user-visible rendition of a recoverable failure.
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (ExitRequested) result()       {}
func (HelpRequested) result()       {}
func (UserCreated) result()         {}
func (UserRead) result()            {}
func (DepositDone) result()         {}
func (WithdrawDone) result()        {}
func (FreeBalanceRead) result()     {}
func (ReservedBalanceRead) result() {}
func (LimitOrderPlaced) result()    {}
func (MarketOrderExecuted) result() {}
func (OrderCanceled) result()       {}
func (MarketRegistered) result()    {}
func (AppError) result()            {}
