package expression

import (
	"io"
)

type lexer struct {
	source string
	index  int
	buf    []lexicalToken
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
		buf:    nil,
	}
}

func (l *lexer) push(t lexicalToken) {
	l.buf = append(l.buf, t)
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexicalToken, error) {
	tok, err := l.consume()
	if err != nil {
		return nil, err
	}
	l.push(tok)
	return tok, nil
}

func (l *lexer) consume() (lexicalToken, error) {
	if len(l.buf) != 0 {
		tok := l.buf[len(l.buf)-1]
		l.buf = l.buf[:len(l.buf)-1]
		return tok, nil
	}

	for l.index != len(l.source) {
		switch c := l.source[l.index]; c {
		case ' ', '\t', '\n', '\r':
			l.index++ // just skip white spaces
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return l.consumeNumber()
		case '+', '-', '*', '/', '^':
			l.index++
			return operatorToken{rangeToken{beginsPos: l.index - 1, endsPos: l.index}}, nil
		case '(', '[', '{':
			l.index++
			return parenToken{
				rangeToken: rangeToken{beginsPos: l.index - 1, endsPos: l.index},
				paren:      ParenToken{Kind: parenKindOf(c), Open: true},
			}, nil
		case ')', ']', '}':
			l.index++
			return parenToken{
				rangeToken: rangeToken{beginsPos: l.index - 1, endsPos: l.index},
				paren:      ParenToken{Kind: parenKindOf(c), Open: false},
			}, nil
		default:
			return nil, &SyntaxError{Kind: InvalidCharacter, Pos: l.index + 1, Symbols: []byte{c}}
		}
	}

	return nil, io.EOF
}

func (l *lexer) consumeNumber() (lexicalToken, error) {
	begins := l.index
	dotFound := false
	for l.index != len(l.source) {
		c := l.source[l.index]
		if c == '.' {
			if dotFound {
				return nil, &SyntaxError{Kind: InvalidNumber, Pos: l.index + 1, Symbols: []byte(l.source[begins : l.index+1])}
			}
			dotFound = true
		} else if c < '0' || '9' < c {
			break
		}
		l.index++
	}
	return numericLiteralToken{rangeToken{beginsPos: begins, endsPos: l.index}}, nil
}

func parenKindOf(c byte) ParenKind {
	switch c {
	case '[', ']':
		return SquareParen
	case '{', '}':
		return CurlyParen
	default:
		return RoundParen
	}
}
