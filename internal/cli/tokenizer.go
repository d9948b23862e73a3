// Package cli implements the line-oriented command surface: a
// tokenizer, a command parser, result rendering and the dispatch loop
// that drives the exchange from a stream of text lines.
package cli

import "fmt"

// ParseStage tells which phase of line processing rejected the input.
type ParseStage int

const (
	StageTokenizer ParseStage = iota
	StageParser
)

func (s ParseStage) String() string {
	switch s {
	case StageTokenizer:
		return "Tokenizer"
	case StageParser:
		return "Parser"
	default:
		return "Invalid stage"
	}
}

// ParseErrorCode classifies every way a line can fail to become a
// command.
type ParseErrorCode int

const (
	EmptyLine ParseErrorCode = iota
	InvalidToken
	UnterminatedQuote
	UnexpectedCharacterAfterQuote
	UnknownCommand
	MissingArgument
	TooManyArguments
	InvalidName
	InvalidNumber
	InvalidID
	InvalidAsset
	InvalidMarket
	InvalidSide
)

func (c ParseErrorCode) String() string {
	switch c {
	case EmptyLine:
		return "EmptyLine"
	case InvalidToken:
		return "InvalidToken"
	case UnterminatedQuote:
		return "UnterminatedQuote"
	case UnexpectedCharacterAfterQuote:
		return "UnexpectedCharacterAfterQuote"
	case UnknownCommand:
		return "UnknownCommand"
	case MissingArgument:
		return "MissingArgument"
	case TooManyArguments:
		return "TooManyArguments"
	case InvalidName:
		return "InvalidName"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidID:
		return "InvalidId"
	case InvalidAsset:
		return "InvalidAsset"
	case InvalidMarket:
		return "InvalidMarket"
	case InvalidSide:
		return "InvalidSide"
	default:
		return "Invalid error code"
	}
}

// ParseError describes why a line was rejected, with the byte column
// the problem was found at.
type ParseError struct {
	Stage   ParseStage
	Code    ParseErrorCode
	Message string
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s/%s at column %d: %s", e.Stage, e.Code, e.Column, e.Message)
}

// Token is one word of input together with the column it starts at.
// For quoted tokens the column is that of the opening quote.
type Token struct {
	Text  string
	Index int
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// Tokenize splits line into whitespace-separated tokens. A
// double-quoted token may embed spaces; the closing quote must be
// followed by whitespace or the end of the line.
func Tokenize(line string) ([]Token, *ParseError) {
	if line == "" {
		return nil, &ParseError{Stage: StageTokenizer, Code: EmptyLine, Message: "Empty line", Column: 0}
	}

	var tokens []Token
	pos := 0
	for pos < len(line) {
		for pos < len(line) && isSpace(line[pos]) {
			pos++
		}
		if pos >= len(line) {
			break
		}

		if line[pos] == '"' {
			quotePos := pos
			pos++
			start := pos
			for pos < len(line) && line[pos] != '"' {
				pos++
			}
			if pos == len(line) {
				return nil, &ParseError{Stage: StageTokenizer, Code: UnterminatedQuote,
					Message: "Unterminated quote", Column: quotePos}
			}
			tokens = append(tokens, Token{Text: line[start:pos], Index: quotePos})
			pos++
			if pos < len(line) && !isSpace(line[pos]) {
				return nil, &ParseError{Stage: StageTokenizer, Code: UnexpectedCharacterAfterQuote,
					Message: "Character after the end of a quote must be whitespace", Column: pos}
			}
		} else {
			start := pos
			for pos < len(line) && !isSpace(line[pos]) {
				pos++
			}
			tokens = append(tokens, Token{Text: line[start:pos], Index: start})
		}
	}

	if len(tokens) == 0 {
		return nil, &ParseError{Stage: StageTokenizer, Code: EmptyLine, Message: "Empty line", Column: 0}
	}
	return tokens, nil
}
