package expression

import (
	"fmt"
	"math"

	"github.com/karupanerura/prefixcalc/internal/types"
)

// Evaluate computes the value of a prefix expression. Division by a zero
// divisor stops the evaluation and returns an error wrapping ErrDivisionByZero.
func Evaluate(p *Prefix) (float64, error) {
	var operands stack[float64]
	for i := len(p.tokens) - 1; i >= 0; i-- {
		switch t := p.tokens[i].(type) {
		case NumberToken:
			operands.push(float64(t))

		case OperatorToken:
			a := operands.pop()
			b := operands.pop()
			v, err := apply(t, a, b)
			if err != nil {
				return 0, err
			}
			operands.push(v)

		default:
			panic(fmt.Sprintf("should not reach here: unexpected token %s in prefix %q", t, p.String()))
		}
	}

	if operands.len() != 1 {
		panic(fmt.Sprintf("should not reach here: %d operands left in prefix %q", operands.len(), p.String()))
	}
	return operands.pop(), nil
}

func apply(op OperatorToken, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, &types.Error{
				Tag:   types.ZeroDivisionErrorTag,
				Err:   ErrDivisionByZero,
				Extra: map[string]any{"dividend": a},
			}
		}
		return a / b, nil
	case '^':
		return math.Pow(a, b), nil
	default:
		panic(fmt.Sprintf("should not reach here: unknown operator %s", op))
	}
}
