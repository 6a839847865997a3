package expression

import "strconv"

// Token is a unit of a converted expression: NumberToken, OperatorToken or ParenToken.
type Token interface {
	String() string
	isToken()
}

type NumberToken float64

func (NumberToken) isToken() {}

func (t NumberToken) String() string {
	return strconv.FormatFloat(float64(t), 'f', 2, 64)
}

type OperatorToken byte

func (OperatorToken) isToken() {}

func (t OperatorToken) String() string {
	return string(t)
}

func (t OperatorToken) precedence() int {
	switch t {
	case '^':
		return 3
	case '*', '/':
		return 2
	case '+', '-':
		return 1
	default:
		return 0
	}
}

type ParenKind int

const (
	RoundParen ParenKind = iota
	SquareParen
	CurlyParen
)

var openParenSymbols = map[ParenKind]byte{
	RoundParen:  '(',
	SquareParen: '[',
	CurlyParen:  '{',
}

var closeParenSymbols = map[ParenKind]byte{
	RoundParen:  ')',
	SquareParen: ']',
	CurlyParen:  '}',
}

type ParenToken struct {
	Kind ParenKind
	Open bool
}

func (ParenToken) isToken() {}

func (t ParenToken) String() string {
	return string(t.symbol())
}

func (t ParenToken) symbol() byte {
	if t.Open {
		return openParenSymbols[t.Kind]
	}
	return closeParenSymbols[t.Kind]
}

func (t ParenToken) flip() ParenToken {
	return ParenToken{Kind: t.Kind, Open: !t.Open}
}

// lexical tokens carry their byte range in the source.

type lexicalToken interface {
	BeginsPos() int
	EndsPos() int
}

type rangeToken struct {
	beginsPos, endsPos int
}

func (t rangeToken) BeginsPos() int {
	return t.beginsPos
}

func (t rangeToken) EndsPos() int {
	return t.endsPos
}

type numericLiteralToken struct {
	rangeToken
}

type operatorToken struct {
	rangeToken
}

type parenToken struct {
	rangeToken
	paren ParenToken
}
