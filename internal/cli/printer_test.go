package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helios-exchange/helios/internal/trading/model"
)

func TestFormatSuccessResults(t *testing.T) {
	cases := []struct {
		result Result
		want   string
	}{
		{UserCreated{UserID: 1, Name: "Alice"}, "[SUCCESS] User created: id=1 name=Alice"},
		{UserRead{UserID: 1, Name: "Alice"}, "[SUCCESS] User: id=1 name=Alice"},
		{DepositDone{UserID: 1, Asset: "USDT", Amount: 100}, "[SUCCESS] Deposited 100 USDT to user 1"},
		{WithdrawDone{UserID: 1, Asset: "USDT", Amount: 40}, "[SUCCESS] Withdrew 40 USDT from user 1"},
		{FreeBalanceRead{UserID: 1, Asset: "USDT", Free: 60}, "[SUCCESS] Free balance: user=1 asset=USDT amount=60"},
		{ReservedBalanceRead{UserID: 1, Asset: "USDT", Reserved: 0}, "[SUCCESS] Reserved balance: user=1 asset=USDT amount=0"},
		{LimitOrderPlaced{OrderID: 3, Filled: 2, Remaining: 1}, "[SUCCESS] Limit order placed: id=3 filled=2 remaining=1"},
		{MarketOrderExecuted{OrderID: 4, Filled: 301, Remaining: 100}, "[SUCCESS] Market order executed: id=4 filled=301 remaining=100"},
		{OrderCanceled{OrderID: 3, Side: model.SideBuy, Remaining: 1}, "[SUCCESS] BUY order 3 canceled. Remaining 1"},
		{MarketRegistered{Market: model.NewMarket("BTC", "USDT")}, "[SUCCESS] Market BTC/USDT registered"},
		{ExitRequested{}, "[INFO] Exit requested"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatResult(tc.result))
	}
}

func TestFormatAppError(t *testing.T) {
	got := FormatResult(AppError{Code: CodeInsufficientFunds, Message: "Insufficient funds"})
	assert.Equal(t, "[ERROR][InsufficientFunds] Insufficient funds", got)
}

func TestFormatParseError(t *testing.T) {
	err := &ParseError{
		Stage:   StageParser,
		Code:    InvalidAsset,
		Message: "Asset must contain 3-10 letters",
		Column:  10,
	}
	assert.Equal(t,
		"[ERROR] [Parser] [InvalidAsset] At position 10: Asset must contain 3-10 letters",
		FormatParseError(err))
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	help := FormatResult(HelpRequested{})
	for _, cmd := range []string{
		"help", "exit", "create-user", "get-user", "deposit", "withdraw",
		"free-balance", "reserved-balance", "place-limit", "place-market",
		"cancel-order", "register-market",
	} {
		assert.True(t, strings.Contains(help, cmd), "help text missing %q", cmd)
	}
}
