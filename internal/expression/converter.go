package expression

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"
)

var converterDebugLog = false

// EnableDebugLog makes every later ToPrefix call log its intermediate token runs.
// Call it before any conversion starts.
func EnableDebugLog() {
	converterDebugLog = true
}

// Prefix is an expression in prefix (Polish) notation, as produced by ToPrefix.
type Prefix struct {
	tokens []Token
}

// Tokens returns a copy of the prefix tokens, operators first.
func (p *Prefix) Tokens() []Token {
	tokens := make([]Token, len(p.tokens))
	copy(tokens, p.tokens)
	return tokens
}

func (p *Prefix) String() string {
	var b strings.Builder
	for i, tok := range p.tokens {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

func (p *Prefix) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type converter struct {
	source string
	debug  bool
}

// ToPrefix converts a validated infix expression to prefix notation.
func ToPrefix(v *Validated) *Prefix {
	c := &converter{source: v.source, debug: converterDebugLog}
	return c.convert()
}

// ToPrefixWithDebugOutput is ToPrefix with the intermediate token runs logged.
func ToPrefixWithDebugOutput(v *Validated) *Prefix {
	c := &converter{source: v.source, debug: true}
	return c.convert()
}

func (c *converter) convert() *Prefix {
	flipped := c.tokenize()
	if c.debug {
		log.Println("flipped tokens: ", renderTokens(flipped))
	}

	output := c.reduce(flipped)

	// output is in reverse prefix order
	tokens := make([]Token, len(output))
	for i, tok := range output {
		tokens[len(output)-1-i] = tok
	}

	prefix := &Prefix{tokens: tokens}
	if c.debug {
		pp.Println(c.source, flipped)
		log.Println("prefix: ", prefix.String())
	}
	return prefix
}

// tokenize folds unary signs into multiplications by 1 or -1 and flips the
// open/close role of every parenthesis.
func (c *converter) tokenize() []Token {
	lex := newLexer(c.source)
	operatorExpected := true

	var tokens []Token
	for {
		tok, err := lex.consume()
		if errors.Is(err, io.EOF) {
			return tokens
		} else if err != nil {
			panic(fmt.Sprintf("should not reach here: %q was validated: %v", c.source, err))
		}

		switch t := tok.(type) {
		case numericLiteralToken:
			literal := c.source[t.BeginsPos():t.EndsPos()]
			v, err := strconv.ParseFloat(literal, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) { // out of range literals become ±Inf
				panic(fmt.Sprintf("should not reach here: invalid number %s at %d: %v", literal, t.BeginsPos()+1, err))
			}
			tokens = append(tokens, NumberToken(v))
			operatorExpected = false

		case operatorToken:
			op := OperatorToken(c.source[t.BeginsPos()])
			if operatorExpected && (op == '-' || op == '+') {
				sign := NumberToken(1)
				if op == '-' {
					sign = -1
				}
				tokens = append(tokens, sign, OperatorToken('*'))
				continue
			}
			tokens = append(tokens, op)
			operatorExpected = true

		case parenToken:
			tokens = append(tokens, t.paren.flip())
			if t.paren.Open {
				operatorExpected = true
			}
		}
	}
}

// reduce walks the flipped run from last to first. The returned tokens are
// the prefix form in reverse.
func (c *converter) reduce(flipped []Token) []Token {
	var operators stack[Token]
	var output []Token

	for i := len(flipped) - 1; i >= 0; i-- {
		switch t := flipped[i].(type) {
		case NumberToken:
			output = append(output, t)

		case OperatorToken:
			for !operators.isEmpty() && precedenceOf(operators.peek()) > t.precedence() {
				output = append(output, operators.pop())
			}
			operators.push(t)

		case ParenToken:
			if t.Open {
				operators.push(t)
				continue
			}
			opener := t.flip()
			for !operators.isEmpty() && operators.peek() != Token(opener) {
				output = append(output, operators.pop())
			}
			if !operators.isEmpty() {
				operators.pop()
			}
		}
	}

	for !operators.isEmpty() {
		output = append(output, operators.pop())
	}
	return output
}

func precedenceOf(t Token) int {
	if op, ok := t.(OperatorToken); ok {
		return op.precedence()
	}
	return 0
}

func renderTokens(tokens []Token) string {
	s := make([]string, len(tokens))
	for i, tok := range tokens {
		s[i] = tok.String()
	}
	return strings.Join(s, " ")
}
