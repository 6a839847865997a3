package expression

import "testing"

func TestStack(t *testing.T) {
	t.Parallel()

	var s stack[Token]
	if !s.isEmpty() {
		t.Fatal("new stack should be empty")
	}

	s.push(NumberToken(1))
	s.push(OperatorToken('+'))
	s.push(ParenToken{Kind: CurlyParen, Open: true})

	if got := s.peek(); got != Token(ParenToken{Kind: CurlyParen, Open: true}) {
		t.Errorf("unexpected peek: %v", got)
	}
	if s.len() != 3 {
		t.Errorf("expect to 3 but got %d", s.len())
	}

	for _, expected := range []Token{ParenToken{Kind: CurlyParen, Open: true}, OperatorToken('+'), NumberToken(1)} {
		if got := s.pop(); got != expected {
			t.Errorf("expect to %v but got %v", expected, got)
		}
	}
	if !s.isEmpty() {
		t.Error("stack should be empty")
	}
}

func TestStackPanicsWhenEmpty(t *testing.T) {
	t.Parallel()

	for name, f := range map[string]func(s *stack[Token]){
		"pop":  func(s *stack[Token]) { s.pop() },
		"peek": func(s *stack[Token]) { s.peek() },
	} {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("should panic")
				}
			}()
			f(&stack[Token]{})
		})
	}
}

func TestParenTokenFlip(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		paren    ParenToken
		expected string
	}{
		{paren: ParenToken{Kind: RoundParen, Open: true}, expected: ")"},
		{paren: ParenToken{Kind: SquareParen, Open: false}, expected: "["},
		{paren: ParenToken{Kind: CurlyParen, Open: true}, expected: "}"},
	} {
		if got := tt.paren.flip().String(); got != tt.expected {
			t.Errorf("expect to %q but got %q", tt.expected, got)
		}
	}
}
