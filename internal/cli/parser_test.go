package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-exchange/helios/internal/trading/model"
)

func mustParse(t *testing.T, line string) Command {
	t.Helper()
	cmd, err := ParseCommand(line)
	require.Nil(t, err, "line %q", line)
	return cmd
}

func parseFailure(t *testing.T, line string) *ParseError {
	t.Helper()
	_, err := ParseCommand(line)
	require.NotNil(t, err, "line %q", line)
	return err
}

func TestParseHelpAndExit(t *testing.T) {
	assert.Equal(t, HelpCommand{}, mustParse(t, "help"))
	assert.Equal(t, ExitCommand{}, mustParse(t, "exit"))

	err := parseFailure(t, "help me")
	assert.Equal(t, TooManyArguments, err.Code)
	assert.Equal(t, 5, err.Column)
}

func TestParseCreateUser(t *testing.T) {
	assert.Equal(t, CreateUserCommand{Name: "Alice"}, mustParse(t, "create-user Alice"))
	assert.Equal(t, CreateUserCommand{Name: "Alice Smith"}, mustParse(t, `create-user "Alice Smith"`))

	err := parseFailure(t, "create-user Al1ce")
	assert.Equal(t, InvalidName, err.Code)

	err = parseFailure(t, "create-user")
	assert.Equal(t, MissingArgument, err.Code)
}

func TestParseGetUser(t *testing.T) {
	assert.Equal(t, GetUserCommand{UserID: 7}, mustParse(t, "get-user 7"))

	err := parseFailure(t, "get-user seven")
	assert.Equal(t, InvalidID, err.Code)
	assert.Contains(t, err.Message, "only digits")

	err = parseFailure(t, "get-user 99999999999999999999999")
	assert.Equal(t, InvalidID, err.Code)
	assert.Contains(t, err.Message, "uint64")

	err = parseFailure(t, "get-user -1")
	assert.Equal(t, InvalidID, err.Code)
}

func TestParseDepositAndWithdraw(t *testing.T) {
	assert.Equal(t,
		DepositCommand{UserID: 1, Asset: "USDT", Quantity: 100},
		mustParse(t, "deposit 1 usdt 100"))
	assert.Equal(t,
		WithdrawCommand{UserID: 2, Asset: "BTC", Quantity: -5},
		mustParse(t, "withdraw 2 BTC -5"))

	err := parseFailure(t, "deposit 1 US 100")
	assert.Equal(t, InvalidAsset, err.Code)
	assert.Contains(t, err.Message, "3-10")

	err = parseFailure(t, "deposit 1 USD7 100")
	assert.Equal(t, InvalidAsset, err.Code)

	err = parseFailure(t, "deposit 1 USDT ten")
	assert.Equal(t, InvalidNumber, err.Code)

	err = parseFailure(t, "deposit 1 USDT 100 extra")
	assert.Equal(t, TooManyArguments, err.Code)
}

func TestParseBalanceQueries(t *testing.T) {
	assert.Equal(t,
		FreeBalanceCommand{UserID: 3, Asset: "ETH"},
		mustParse(t, "free-balance 3 eth"))
	assert.Equal(t,
		ReservedBalanceCommand{UserID: 3, Asset: "ETH"},
		mustParse(t, "reserved-balance 3 ETH"))
}

func TestParsePlaceLimit(t *testing.T) {
	assert.Equal(t,
		PlaceLimitCommand{
			UserID:   1,
			Market:   model.NewMarket("BTC", "USDT"),
			Side:     model.SideBuy,
			Price:    95000,
			Quantity: 2,
		},
		mustParse(t, "place-limit 1 btc/usdt BUY 95000 2"))

	err := parseFailure(t, "place-limit 1 BTCUSDT buy 95000 2")
	assert.Equal(t, InvalidMarket, err.Code)

	err = parseFailure(t, "place-limit 1 BTC/USDT/EUR buy 95000 2")
	assert.Equal(t, InvalidMarket, err.Code)

	err = parseFailure(t, "place-limit 1 BTC/btc buy 95000 2")
	assert.Equal(t, InvalidMarket, err.Code)
	assert.Contains(t, err.Message, "different assets")

	err = parseFailure(t, "place-limit 1 BTC/USDT hold 95000 2")
	assert.Equal(t, InvalidSide, err.Code)
}

func TestParseMarketQuoteAssetColumn(t *testing.T) {
	err := parseFailure(t, "register-market BTC/U1")
	assert.Equal(t, InvalidAsset, err.Code)
	// Column points into the quote part of the pair.
	assert.Equal(t, 20, err.Column)
}

func TestParsePlaceMarket(t *testing.T) {
	assert.Equal(t,
		PlaceMarketCommand{
			UserID:   1,
			Market:   model.NewMarket("BTC", "USDT"),
			Side:     model.SideSell,
			Quantity: 3,
		},
		mustParse(t, "place-market 1 BTC/USDT sell 3"))

	err := parseFailure(t, "place-market 1 BTC/USDT sell")
	assert.Equal(t, MissingArgument, err.Code)
}

func TestParseCancelOrder(t *testing.T) {
	assert.Equal(t,
		CancelOrderCommand{UserID: 1, OrderID: 42},
		mustParse(t, "cancel-order 1 42"))

	err := parseFailure(t, "cancel-order 1 fortytwo")
	assert.Equal(t, InvalidID, err.Code)
	assert.Contains(t, err.Message, "Order id")
}

func TestParseRegisterMarket(t *testing.T) {
	assert.Equal(t,
		RegisterMarketCommand{Market: model.NewMarket("BTC", "USDT")},
		mustParse(t, "register-market BTC/USDT"))
}

func TestParseUnknownCommand(t *testing.T) {
	err := parseFailure(t, "frobnicate 1 2 3")
	assert.Equal(t, UnknownCommand, err.Code)
	assert.Equal(t, StageParser, err.Stage)
	assert.Equal(t, 0, err.Column)
}
