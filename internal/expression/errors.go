package expression

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDivisionByZero is wrapped by the error Evaluate returns when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("can't divide by zero")

type SyntaxErrorKind int

const (
	MissingOperatorBeforeParenthesis SyntaxErrorKind = iota + 1
	UnmatchedClose
	MismatchedParenthesisKind
	LeadingOperator
	TrailingOperator
	OperatorBeforeClose
	InvalidConsecutiveOperators
	UnmatchedOpen
	EmptyExpression
	EmptyParentheses
	MissingOperatorAfterParenthesis
	MissingOperatorBetweenOperands
	InvalidCharacter
	InvalidNumber
)

var syntaxErrorKindNames = map[SyntaxErrorKind]string{
	MissingOperatorBeforeParenthesis: "MissingOperatorBeforeParenthesis",
	UnmatchedClose:                   "UnmatchedClose",
	MismatchedParenthesisKind:        "MismatchedParenthesisKind",
	LeadingOperator:                  "LeadingOperator",
	TrailingOperator:                 "TrailingOperator",
	OperatorBeforeClose:              "OperatorBeforeClose",
	InvalidConsecutiveOperators:      "InvalidConsecutiveOperators",
	UnmatchedOpen:                    "UnmatchedOpen",
	EmptyExpression:                  "EmptyExpression",
	EmptyParentheses:                 "EmptyParentheses",
	MissingOperatorAfterParenthesis:  "MissingOperatorAfterParenthesis",
	MissingOperatorBetweenOperands:   "MissingOperatorBetweenOperands",
	InvalidCharacter:                 "InvalidCharacter",
	InvalidNumber:                    "InvalidNumber",
}

func (k SyntaxErrorKind) String() string {
	if name, ok := syntaxErrorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SyntaxErrorKind(%d)", int(k))
}

// SyntaxError is the first grammar violation found in an infix expression.
// Pos is a 1-based character position.
type SyntaxError struct {
	Kind    SyntaxErrorKind
	Pos     int
	Symbols []byte
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case MissingOperatorBeforeParenthesis:
		return fmt.Sprintf("missing operator before parenthesis %q at position %d", e.Symbols, e.Pos)
	case UnmatchedClose:
		return fmt.Sprintf("closing parenthesis %q without opening at position %d", e.Symbols, e.Pos)
	case MismatchedParenthesisKind:
		return fmt.Sprintf("mismatched parentheses: closing %q at position %d with last opening %q", e.Symbols[1:], e.Pos, e.Symbols[:1])
	case LeadingOperator:
		if len(e.Symbols) > 1 {
			return fmt.Sprintf("operator after opening parenthesis %q at position %d", e.Symbols, e.Pos)
		}
		return fmt.Sprintf("operator %q at start at position %d", e.Symbols, e.Pos)
	case TrailingOperator:
		return fmt.Sprintf("operator %q at end at position %d", e.Symbols, e.Pos)
	case OperatorBeforeClose:
		return fmt.Sprintf("operator followed by closing parenthesis %q at position %d", e.Symbols, e.Pos)
	case InvalidConsecutiveOperators:
		return fmt.Sprintf("consecutive operators %q at position %d", e.Symbols, e.Pos)
	case UnmatchedOpen:
		quoted := make([]string, len(e.Symbols))
		for i, c := range e.Symbols {
			quoted[i] = fmt.Sprintf("%q", string(c))
		}
		return fmt.Sprintf("unmatched opening parenthesis %s at position %d", strings.Join(quoted, " "), e.Pos)
	case EmptyExpression:
		return "empty expression"
	case EmptyParentheses:
		return fmt.Sprintf("empty parentheses %q at position %d", e.Symbols, e.Pos)
	case MissingOperatorAfterParenthesis:
		return fmt.Sprintf("missing operator after parenthesis %q at position %d", e.Symbols, e.Pos)
	case MissingOperatorBetweenOperands:
		return fmt.Sprintf("missing operator between operands at position %d", e.Pos)
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q at position %d", e.Symbols, e.Pos)
	case InvalidNumber:
		return fmt.Sprintf("invalid number %q at position %d", e.Symbols, e.Pos)
	default:
		return fmt.Sprintf("%s at position %d", e.Kind, e.Pos)
	}
}

func (e *SyntaxError) extra() map[string]any {
	return map[string]any{
		"kind":     e.Kind.String(),
		"position": e.Pos,
		"symbols":  string(e.Symbols),
	}
}
