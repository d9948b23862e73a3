package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/exchange"
)

// App wires the command surface to the exchange: it parses lines,
// dispatches commands and renders results, one output line per input
// line.
type App struct {
	exchange *exchange.Exchange
	logger   *zap.Logger
	prompt   string
}

// NewApp creates an app over exchange. prompt is printed before each
// line when non-empty; the reference driver runs with an empty prompt.
func NewApp(ex *exchange.Exchange, logger *zap.Logger, prompt string) *App {
	return &App{exchange: ex, logger: logger, prompt: prompt}
}

// appError maps a domain error onto its user-visible code and message.
// Anything outside the recoverable taxonomy surfaces as InternalError.
func appError(err error) AppError {
	switch {
	case errors.Is(err, exchange.ErrUserNotFound):
		return AppError{Code: CodeUserNotFound, Message: "User not found"}
	case errors.Is(err, exchange.ErrUserAlreadyExists):
		return AppError{Code: CodeUserAlreadyExists, Message: "User already exists"}
	case errors.Is(err, exchange.ErrEmptyName):
		return AppError{Code: CodeEmptyName, Message: "Empty user name"}
	case errors.Is(err, exchange.ErrMarketNotListed):
		return AppError{Code: CodeMarketNotListed, Message: "Market not listed"}
	case errors.Is(err, exchange.ErrMarketAlreadyListed):
		return AppError{Code: CodeMarketAlreadyListed, Message: "Market already listed"}
	case errors.Is(err, exchange.ErrInsufficientFunds):
		return AppError{Code: CodeInsufficientFunds, Message: "Insufficient funds"}
	case errors.Is(err, exchange.ErrInsufficientReserved):
		return AppError{Code: CodeInsufficientReserved, Message: "Insufficient reserved funds"}
	case errors.Is(err, exchange.ErrInvalidAmount):
		return AppError{Code: CodeInvalidAmount, Message: "Invalid amount"}
	case errors.Is(err, exchange.ErrInvalidQuantity):
		return AppError{Code: CodeInvalidQuantity, Message: "Invalid quantity"}
	case errors.Is(err, exchange.ErrOrderNotFound):
		return AppError{Code: CodeOrderNotFound, Message: "Order not found"}
	case errors.Is(err, exchange.ErrNotOrderOwner):
		return AppError{Code: CodeNotOrderOwner, Message: "Not order owner"}
	default:
		return AppError{Code: CodeInternalError, Message: "Internal error"}
	}
}

// Dispatch executes one command against the exchange and returns its
// result.
func (a *App) Dispatch(cmd Command) Result {
	switch c := cmd.(type) {
	case HelpCommand:
		return HelpRequested{}
	case ExitCommand:
		return ExitRequested{}

	case CreateUserCommand:
		userID, err := a.exchange.CreateUser(c.Name)
		if err != nil {
			return appError(err)
		}
		return UserCreated{UserID: userID, Name: c.Name}

	case GetUserCommand:
		name, err := a.exchange.UserName(c.UserID)
		if err != nil {
			return appError(err)
		}
		return UserRead{UserID: c.UserID, Name: name}

	case DepositCommand:
		if err := a.exchange.Deposit(c.UserID, c.Asset, c.Quantity); err != nil {
			return appError(err)
		}
		return DepositDone{UserID: c.UserID, Asset: c.Asset, Amount: c.Quantity}

	case WithdrawCommand:
		if err := a.exchange.Withdraw(c.UserID, c.Asset, c.Quantity); err != nil {
			return appError(err)
		}
		return WithdrawDone{UserID: c.UserID, Asset: c.Asset, Amount: c.Quantity}

	case FreeBalanceCommand:
		free, err := a.exchange.FreeBalance(c.UserID, c.Asset)
		if err != nil {
			return appError(err)
		}
		return FreeBalanceRead{UserID: c.UserID, Asset: c.Asset, Free: free}

	case ReservedBalanceCommand:
		reserved, err := a.exchange.ReservedBalance(c.UserID, c.Asset)
		if err != nil {
			return appError(err)
		}
		return ReservedBalanceRead{UserID: c.UserID, Asset: c.Asset, Reserved: reserved}

	case PlaceLimitCommand:
		placement, err := a.exchange.PlaceLimitOrder(c.UserID, c.Market, c.Side, c.Price, c.Quantity)
		if err != nil {
			return appError(err)
		}
		return LimitOrderPlaced{OrderID: placement.OrderID, Filled: placement.Filled, Remaining: placement.Remaining}

	case PlaceMarketCommand:
		placement, err := a.exchange.ExecuteMarketOrder(c.UserID, c.Market, c.Side, c.Quantity)
		if err != nil {
			return appError(err)
		}
		return MarketOrderExecuted{OrderID: placement.OrderID, Filled: placement.Filled, Remaining: placement.Remaining}

	case CancelOrderCommand:
		outcome, err := a.exchange.CancelOrder(c.UserID, c.OrderID)
		if err != nil {
			return appError(err)
		}
		return OrderCanceled{OrderID: outcome.OrderID, Side: outcome.Side, Remaining: outcome.Remaining}

	case RegisterMarketCommand:
		if err := a.exchange.RegisterMarket(c.Market); err != nil {
			return appError(err)
		}
		return MarketRegistered{Market: c.Market}

	default:
		a.logger.Error("unhandled command variant", zap.String("type", fmt.Sprintf("%T", cmd)))
		return AppError{Code: CodeInternalError, Message: "Internal error"}
	}
}

// HandleLine processes one input line end to end and returns the text
// to print for it.
func (a *App) HandleLine(line string) (string, Result) {
	cmd, parseErr := ParseCommand(line)
	if parseErr != nil {
		return FormatParseError(parseErr), AppError{Code: CodeInvalidInput, Message: parseErr.Message}
	}
	result := a.Dispatch(cmd)
	return FormatResult(result), result
}

// Run reads lines from r until EOF or an exit command, writing one
// result per line to w.
func (a *App) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		if a.prompt != "" {
			fmt.Fprint(w, a.prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		traceID := uuid.NewString()
		log := a.logger.With(zap.String("trace_id", traceID))
		log.Debug("line received", zap.String("line", line))

		output, result := a.HandleLine(line)
		if _, err := fmt.Fprintln(w, output); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		if appErr, ok := result.(AppError); ok {
			log.Info("command failed", zap.String("code", appErr.Code.String()))
		}
		if _, ok := result.(ExitRequested); ok {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
