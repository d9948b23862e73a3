package cli

import "fmt"

const helpText = `Helios Exchange CLI

Commands:
  help
  exit
  create-user <name>
  get-user <user_id>
  deposit <user_id> <asset> <quantity>
  withdraw <user_id> <asset> <quantity>
  free-balance <user_id> <asset>
  reserved-balance <user_id> <asset>
  place-limit <user_id> <base>/<quote> <buy|sell> <price> <quantity>
  place-market <user_id> <base>/<quote> <buy|sell> <quantity>
  cancel-order <user_id> <order_id>
  register-market <base>/<quote>

Examples:
  create-user Alice
  register-market BTC/USDT
  deposit 1 USDT 100000
  place-limit 1 BTC/USDT buy 95000 2
  place-market 1 BTC/USDT sell 1
  cancel-order 1 42`

// FormatParseError renders a rejected line with the stage, the code
// and the column the problem was found at.
func FormatParseError(err *ParseError) string {
	return fmt.Sprintf("[ERROR] [%s] [%s] At position %d: %s",
		err.Stage, err.Code, err.Column, err.Message)
}

// FormatResult renders one dispatch result as a single line, except
// for the multi-line help text.
func FormatResult(result Result) string {
	switch r := result.(type) {
	case ExitRequested:
		return "[INFO] Exit requested"
	case HelpRequested:
		return helpText
	case UserCreated:
		return fmt.Sprintf("[SUCCESS] User created: id=%d name=%s", r.UserID, r.Name)
	case UserRead:
		return fmt.Sprintf("[SUCCESS] User: id=%d name=%s", r.UserID, r.Name)
	case DepositDone:
		return fmt.Sprintf("[SUCCESS] Deposited %d %s to user %d", r.Amount, r.Asset, r.UserID)
	case WithdrawDone:
		return fmt.Sprintf("[SUCCESS] Withdrew %d %s from user %d", r.Amount, r.Asset, r.UserID)
	case FreeBalanceRead:
		return fmt.Sprintf("[SUCCESS] Free balance: user=%d asset=%s amount=%d", r.UserID, r.Asset, r.Free)
	case ReservedBalanceRead:
		return fmt.Sprintf("[SUCCESS] Reserved balance: user=%d asset=%s amount=%d", r.UserID, r.Asset, r.Reserved)
	case LimitOrderPlaced:
		return fmt.Sprintf("[SUCCESS] Limit order placed: id=%d filled=%d remaining=%d", r.OrderID, r.Filled, r.Remaining)
	case MarketOrderExecuted:
		return fmt.Sprintf("[SUCCESS] Market order executed: id=%d filled=%d remaining=%d", r.OrderID, r.Filled, r.Remaining)
	case OrderCanceled:
		return fmt.Sprintf("[SUCCESS] %s order %d canceled. Remaining %d", r.Side, r.OrderID, r.Remaining)
	case MarketRegistered:
		return fmt.Sprintf("[SUCCESS] Market %s registered", r.Market)
	case AppError:
		return fmt.Sprintf("[ERROR][%s] %s", r.Code, r.Message)
	default:
		return fmt.Sprintf("[ERROR][%s] unrenderable result %T", CodeInternalError, result)
	}
}
