package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/helios-exchange/helios/internal/trading/model"
)

func parserError(code ParseErrorCode, message string, column int) *ParseError {
	return &ParseError{Stage: StageParser, Code: code, Message: message, Column: column}
}

func checkArgumentCount(tokens []Token, count int) *ParseError {
	if len(tokens) < count {
		return parserError(MissingArgument, "Missing argument", tokens[0].Index)
	}
	if len(tokens) > count {
		return parserError(TooManyArguments, "Too many arguments", tokens[count].Index)
	}
	return nil
}

func outOfRange(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

func parseName(tok Token) (string, *ParseError) {
	for i := 0; i < len(tok.Text); i++ {
		c := tok.Text[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == ' ' {
			continue
		}
		return "", parserError(InvalidName,
			"A name must contain only alphabetic characters and spaces", tok.Index)
	}
	return tok.Text, nil
}

func parseID(tok Token, what string) (uint64, *ParseError) {
	id, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		if outOfRange(err) {
			return 0, parserError(InvalidID, what+" is larger than a uint64", tok.Index)
		}
		return 0, parserError(InvalidID, what+" must contain only digits", tok.Index)
	}
	return id, nil
}

func parseUserID(tok Token) (model.UserID, *ParseError) {
	id, err := parseID(tok, "User id")
	return model.UserID(id), err
}

func parseOrderID(tok Token) (model.OrderID, *ParseError) {
	id, err := parseID(tok, "Order id")
	return model.OrderID(id), err
}

func parseInt64(tok Token, what string) (int64, *ParseError) {
	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		if outOfRange(err) {
			return 0, parserError(InvalidNumber, what+" is larger than a int64", tok.Index)
		}
		return 0, parserError(InvalidNumber, what+" must contain only digits", tok.Index)
	}
	return v, nil
}

func parseAssetAt(text string, column int) (model.Asset, *ParseError) {
	if len(text) < 3 || len(text) > 10 {
		return "", parserError(InvalidAsset, "Asset must contain 3-10 letters", column)
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			continue
		}
		return "", parserError(InvalidAsset, "Asset must contain only A-Z letters", column)
	}
	return model.NewAsset(text), nil
}

func parseAsset(tok Token) (model.Asset, *ParseError) {
	return parseAssetAt(tok.Text, tok.Index)
}

func parseMarket(tok Token) (model.Market, *ParseError) {
	slash := strings.IndexByte(tok.Text, '/')
	if slash < 0 || strings.IndexByte(tok.Text[slash+1:], '/') >= 0 {
		return model.Market{}, parserError(InvalidMarket,
			"Market must be in format <base>/<quote>", tok.Index)
	}
	base, err := parseAssetAt(tok.Text[:slash], tok.Index)
	if err != nil {
		return model.Market{}, err
	}
	quote, err := parseAssetAt(tok.Text[slash+1:], tok.Index+slash+1)
	if err != nil {
		return model.Market{}, err
	}
	// Assets canonicalize to upper case, so this also rejects pairs that
	// differ only in casing.
	if base == quote {
		return model.Market{}, parserError(InvalidMarket,
			"Market base and quote must be different assets", tok.Index)
	}
	return model.NewMarket(base, quote), nil
}

func parseSide(tok Token) (model.Side, *ParseError) {
	switch strings.ToLower(tok.Text) {
	case "buy":
		return model.SideBuy, nil
	case "sell":
		return model.SideSell, nil
	default:
		return 0, parserError(InvalidSide, "Side must be buy or sell", tok.Index)
	}
}

func parseCreateUser(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 2); err != nil {
		return nil, err
	}
	name, err := parseName(tokens[1])
	if err != nil {
		return nil, err
	}
	return CreateUserCommand{Name: name}, nil
}

func parseGetUser(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 2); err != nil {
		return nil, err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return nil, err
	}
	return GetUserCommand{UserID: userID}, nil
}

func parseBalanceMutation(tokens []Token) (model.UserID, model.Asset, model.Quantity, *ParseError) {
	if err := checkArgumentCount(tokens, 4); err != nil {
		return 0, "", 0, err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return 0, "", 0, err
	}
	asset, err := parseAsset(tokens[2])
	if err != nil {
		return 0, "", 0, err
	}
	quantity, err := parseInt64(tokens[3], "Quantity")
	if err != nil {
		return 0, "", 0, err
	}
	return userID, asset, quantity, nil
}

func parseBalanceQuery(tokens []Token) (model.UserID, model.Asset, *ParseError) {
	if err := checkArgumentCount(tokens, 3); err != nil {
		return 0, "", err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return 0, "", err
	}
	asset, err := parseAsset(tokens[2])
	if err != nil {
		return 0, "", err
	}
	return userID, asset, nil
}

func parsePlaceLimit(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 6); err != nil {
		return nil, err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return nil, err
	}
	market, err := parseMarket(tokens[2])
	if err != nil {
		return nil, err
	}
	side, err := parseSide(tokens[3])
	if err != nil {
		return nil, err
	}
	price, err := parseInt64(tokens[4], "Price")
	if err != nil {
		return nil, err
	}
	quantity, err := parseInt64(tokens[5], "Quantity")
	if err != nil {
		return nil, err
	}
	return PlaceLimitCommand{UserID: userID, Market: market, Side: side, Price: price, Quantity: quantity}, nil
}

func parsePlaceMarket(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 5); err != nil {
		return nil, err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return nil, err
	}
	market, err := parseMarket(tokens[2])
	if err != nil {
		return nil, err
	}
	side, err := parseSide(tokens[3])
	if err != nil {
		return nil, err
	}
	quantity, err := parseInt64(tokens[4], "Quantity")
	if err != nil {
		return nil, err
	}
	return PlaceMarketCommand{UserID: userID, Market: market, Side: side, Quantity: quantity}, nil
}

func parseCancelOrder(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 3); err != nil {
		return nil, err
	}
	userID, err := parseUserID(tokens[1])
	if err != nil {
		return nil, err
	}
	orderID, err := parseOrderID(tokens[2])
	if err != nil {
		return nil, err
	}
	return CancelOrderCommand{UserID: userID, OrderID: orderID}, nil
}

func parseRegisterMarket(tokens []Token) (Command, *ParseError) {
	if err := checkArgumentCount(tokens, 2); err != nil {
		return nil, err
	}
	market, err := parseMarket(tokens[1])
	if err != nil {
		return nil, err
	}
	return RegisterMarketCommand{Market: market}, nil
}

// ParseCommand turns one input line into a Command, or explains at
// which column and why the line is not one.
func ParseCommand(line string) (Command, *ParseError) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}

	switch tokens[0].Text {
	case "help":
		if err := checkArgumentCount(tokens, 1); err != nil {
			return nil, err
		}
		return HelpCommand{}, nil
	case "exit":
		if err := checkArgumentCount(tokens, 1); err != nil {
			return nil, err
		}
		return ExitCommand{}, nil
	case "create-user":
		return parseCreateUser(tokens)
	case "get-user":
		return parseGetUser(tokens)
	case "deposit":
		userID, asset, quantity, err := parseBalanceMutation(tokens)
		if err != nil {
			return nil, err
		}
		return DepositCommand{UserID: userID, Asset: asset, Quantity: quantity}, nil
	case "withdraw":
		userID, asset, quantity, err := parseBalanceMutation(tokens)
		if err != nil {
			return nil, err
		}
		return WithdrawCommand{UserID: userID, Asset: asset, Quantity: quantity}, nil
	case "free-balance":
		userID, asset, err := parseBalanceQuery(tokens)
		if err != nil {
			return nil, err
		}
		return FreeBalanceCommand{UserID: userID, Asset: asset}, nil
	case "reserved-balance":
		userID, asset, err := parseBalanceQuery(tokens)
		if err != nil {
			return nil, err
		}
		return ReservedBalanceCommand{UserID: userID, Asset: asset}, nil
	case "place-limit":
		return parsePlaceLimit(tokens)
	case "place-market":
		return parsePlaceMarket(tokens)
	case "cancel-order":
		return parseCancelOrder(tokens)
	case "register-market":
		return parseRegisterMarket(tokens)
	default:
		return nil, parserError(UnknownCommand, "Unknown command", tokens[0].Index)
	}
}
