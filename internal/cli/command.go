package cli

import "github.com/helios-exchange/helios/internal/trading/model"

// Command is the sum type of everything a well-formed input line can
// ask for. The parser resolves markets, sides and identifiers to their
// domain types, so dispatch never re-parses text.
type Command interface {
	command()
}

type HelpCommand struct{}

type ExitCommand struct{}

type CreateUserCommand struct {
	Name string
}

type GetUserCommand struct {
	UserID model.UserID
}

type DepositCommand struct {
	UserID   model.UserID
	Asset    model.Asset
	Quantity model.Quantity
}

type WithdrawCommand struct {
	UserID   model.UserID
	Asset    model.Asset
	Quantity model.Quantity
}

type FreeBalanceCommand struct {
	UserID model.UserID
	Asset  model.Asset
}

type ReservedBalanceCommand struct {
	UserID model.UserID
	Asset  model.Asset
}

type PlaceLimitCommand struct {
	UserID   model.UserID
	Market   model.Market
	Side     model.Side
	Price    model.Price
	Quantity model.Quantity
}

type PlaceMarketCommand struct {
	UserID   model.UserID
	Market   model.Market
	Side     model.Side
	Quantity model.Quantity
}

type CancelOrderCommand struct {
	UserID  model.UserID
	OrderID model.OrderID
}

type RegisterMarketCommand struct {
	Market model.Market
}

func (HelpCommand) command()            {}
func (ExitCommand) command()            {}
func (CreateUserCommand) command()      {}
func (GetUserCommand) command()         {}
func (DepositCommand) command()         {}
func (WithdrawCommand) command()        {}
func (FreeBalanceCommand) command()     {}
func (ReservedBalanceCommand) command() {}
func (PlaceLimitCommand) command()      {}
func (PlaceMarketCommand) command()     {}
func (CancelOrderCommand) command()     {}
func (RegisterMarketCommand) command()  {}
