package expression

import (
	"errors"
	"fmt"
	"io"

	"github.com/karupanerura/prefixcalc/internal/types"
)

// Validated is an infix expression that passed Validate. It is the only input ToPrefix accepts.
type Validated struct {
	source string
}

func (v *Validated) Source() string {
	return v.source
}

func (v *Validated) String() string {
	return v.source
}

type validator struct {
	source string
	lex    *lexer
	opens  stack[parenToken]
	prev   lexicalToken
}

// Validate scans source once and reports the first grammar violation, if any.
// The returned error is a *types.Error tagged SyntaxError wrapping a *SyntaxError.
func Validate(source string) (*Validated, error) {
	v := &validator{source: source, lex: newLexer(source)}
	if err := v.validate(); err != nil {
		return nil, &types.Error{
			Tag:   types.SyntaxErrorTag,
			Err:   err,
			Extra: err.extra(),
		}
	}
	return &Validated{source: source}, nil
}

func (v *validator) validate() *SyntaxError {
	for {
		tok, err := v.lex.consume()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return asSyntaxError(err)
		}

		var syntaxErr *SyntaxError
		switch t := tok.(type) {
		case parenToken:
			if t.paren.Open {
				syntaxErr = v.checkOpenParen(t)
			} else {
				syntaxErr = v.checkCloseParen(t)
			}
		case operatorToken:
			syntaxErr = v.checkOperator(t)
		case numericLiteralToken:
			syntaxErr = v.checkNumber(t)
		default:
			panic(fmt.Sprintf("should not reach here: unknown token %T in %q", tok, v.source))
		}
		if syntaxErr != nil {
			return syntaxErr
		}

		v.prev = tok
	}

	if v.prev == nil {
		return &SyntaxError{Kind: EmptyExpression}
	}
	if !v.opens.isEmpty() {
		// outermost first
		symbols := make([]byte, 0, v.opens.len())
		for _, open := range v.opens.items {
			symbols = append(symbols, open.paren.symbol())
		}
		return &SyntaxError{
			Kind:    UnmatchedOpen,
			Pos:     v.opens.items[0].BeginsPos() + 1,
			Symbols: symbols,
		}
	}
	return nil
}

func (v *validator) checkOpenParen(t parenToken) *SyntaxError {
	if v.prev != nil && !isOperator(v.prev) && !isOpenParen(v.prev) {
		return &SyntaxError{
			Kind:    MissingOperatorBeforeParenthesis,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{v.lastByteOf(v.prev), t.paren.symbol()},
		}
	}

	v.opens.push(t)
	return nil
}

func (v *validator) checkCloseParen(t parenToken) *SyntaxError {
	if v.opens.isEmpty() {
		return &SyntaxError{
			Kind:    UnmatchedClose,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{t.paren.symbol()},
		}
	}

	open := v.opens.pop()
	if open.paren.Kind != t.paren.Kind {
		return &SyntaxError{
			Kind:    MismatchedParenthesisKind,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{open.paren.symbol(), t.paren.symbol()},
		}
	}
	if isOpenParen(v.prev) {
		return &SyntaxError{
			Kind:    EmptyParentheses,
			Pos:     open.BeginsPos() + 1,
			Symbols: []byte{open.paren.symbol(), t.paren.symbol()},
		}
	}
	return nil
}

func (v *validator) checkOperator(t operatorToken) *SyntaxError {
	op := v.source[t.BeginsPos()]
	isSign := op == '+' || op == '-'

	if v.prev == nil && !isSign {
		return &SyntaxError{Kind: LeadingOperator, Pos: t.BeginsPos() + 1, Symbols: []byte{op}}
	}
	if isOpenParen(v.prev) && !isSign {
		return &SyntaxError{
			Kind:    LeadingOperator,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{v.lastByteOf(v.prev), op},
		}
	}

	next, err := v.lex.peek()
	if errors.Is(err, io.EOF) {
		return &SyntaxError{Kind: TrailingOperator, Pos: t.BeginsPos() + 1, Symbols: []byte{op}}
	}
	if err == nil && isCloseParen(next) {
		return &SyntaxError{
			Kind:    OperatorBeforeClose,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{op, v.source[next.BeginsPos()]},
		}
	}

	if isOperator(v.prev) && !isSign {
		return &SyntaxError{
			Kind:    InvalidConsecutiveOperators,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{v.lastByteOf(v.prev), op},
		}
	}

	// a broken token after the operator is reported only after the operator itself passed
	if err != nil {
		return asSyntaxError(err)
	}
	return nil
}

func (v *validator) checkNumber(t numericLiteralToken) *SyntaxError {
	if isCloseParen(v.prev) {
		return &SyntaxError{
			Kind:    MissingOperatorAfterParenthesis,
			Pos:     t.BeginsPos() + 1,
			Symbols: []byte{v.lastByteOf(v.prev), v.source[t.BeginsPos()]},
		}
	}
	if _, isNum := v.prev.(numericLiteralToken); isNum {
		return &SyntaxError{Kind: MissingOperatorBetweenOperands, Pos: t.BeginsPos() + 1}
	}
	return nil
}

func (v *validator) lastByteOf(t lexicalToken) byte {
	return v.source[t.EndsPos()-1]
}

func isOperator(t lexicalToken) bool {
	_, ok := t.(operatorToken)
	return ok
}

func isOpenParen(t lexicalToken) bool {
	p, ok := t.(parenToken)
	return ok && p.paren.Open
}

func isCloseParen(t lexicalToken) bool {
	p, ok := t.(parenToken)
	return ok && !p.paren.Open
}

func asSyntaxError(err error) *SyntaxError {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr
	}
	panic(fmt.Sprintf("should not reach here: unexpected lexer error: %v", err))
}
