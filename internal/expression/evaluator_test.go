package expression_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/karupanerura/prefixcalc/internal/expression"
	"github.com/karupanerura/prefixcalc/internal/types"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source                   string
		expected                 float64
		expectToBeDivisionByZero bool
	}{
		{source: "100", expected: 100},
		{source: "3+4*2", expected: 11},
		{source: "(1+2)*3", expected: 9},
		{source: "-3+4", expected: 1},
		{source: "+5", expected: 5},
		{source: "2^3^2", expected: 64},
		{source: "8-2-1", expected: 5},
		{source: "2-3+4", expected: 3},
		{source: "16/4/2", expected: 2},
		{source: "2*3-4/2+1", expected: 5},
		{source: "2*3^2", expected: 18},
		{source: "2*(3+4)^2", expected: 98},
		{source: "3--4", expected: 7},
		{source: "-(2+3)", expected: -5},
		{source: "[2+3]*{4-1}", expected: 15},
		{source: "10/4", expected: 2.5},
		{source: "2.5*2", expected: 5},
		{source: "0/5", expected: 0},
		{source: "5/0", expectToBeDivisionByZero: true},
		{source: "5/(2-2)", expectToBeDivisionByZero: true},
		{source: "1+{3*[2/(1-1)]}", expectToBeDivisionByZero: true},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			v, err := expression.Validate(tt.source)
			if err != nil {
				t.Fatal(err)
			}

			ret, err := expression.Evaluate(expression.ToPrefix(v))
			if err != nil {
				if tt.expectToBeDivisionByZero {
					if !errors.Is(err, expression.ErrDivisionByZero) {
						t.Errorf("should wrap ErrDivisionByZero: %v", err)
					}
					if !types.HasTag(err, types.ZeroDivisionErrorTag) {
						t.Errorf("should be tagged %s: %v", types.ZeroDivisionErrorTag, err)
					}
					return
				}
				t.Fatal(err)
			}
			if tt.expectToBeDivisionByZero {
				t.Error("should be division by zero")
				return
			}

			if math.Abs(ret-tt.expected) > 0.0000001 {
				t.Errorf("expect to %v but got %v", tt.expected, ret)
			}
		})
	}
}

func TestEvaluateMatchesLeftToRightGrouping(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(20261019))
	for i := 0; i < 5000; i++ {
		source := randomExpression(rnd, 3)

		expected, expectToBeDivisionByZero := referenceEvaluate(t, source)

		v, err := expression.Validate(source)
		if err != nil {
			t.Fatalf("%q: %v", source, err)
		}
		ret, err := expression.Evaluate(expression.ToPrefix(v))
		if expectToBeDivisionByZero {
			if !errors.Is(err, expression.ErrDivisionByZero) {
				t.Errorf("%q: should be division by zero but got %v (%v)", source, ret, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", source, err)
			continue
		}
		if !sameFloat(expected, ret) {
			t.Errorf("%q: expect to %v but got %v", source, expected, ret)
		}
	}
}

var randomOperators = []string{"+", "-", "*", "/", "^"}

var randomParens = [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}}

func randomExpression(rnd *rand.Rand, depth int) string {
	var b strings.Builder
	operands := 1 + rnd.Intn(4)
	for i := 0; i < operands; i++ {
		if i != 0 {
			b.WriteString(randomOperators[rnd.Intn(len(randomOperators))])
		}
		if depth > 0 && rnd.Intn(4) == 0 {
			paren := randomParens[rnd.Intn(len(randomParens))]
			b.WriteString(paren[0])
			b.WriteString(randomExpression(rnd, depth-1))
			b.WriteString(paren[1])
		} else {
			fmt.Fprintf(&b, "%d", rnd.Intn(10))
		}
	}
	return b.String()
}

func sameFloat(a, b float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// referenceEvaluator is a recursive descent evaluator for sign-free expressions
// where ^ binds tighter than * and /, which bind tighter than + and -, and every level groups left to right.
type referenceEvaluator struct {
	t              *testing.T
	source         string
	pos            int
	divisionByZero bool
}

func referenceEvaluate(t *testing.T, source string) (float64, bool) {
	t.Helper()

	r := &referenceEvaluator{t: t, source: source}
	ret := r.sum()
	if r.pos != len(source) {
		t.Fatalf("%q: trailing input at %d", source, r.pos)
	}
	return ret, r.divisionByZero
}

func (r *referenceEvaluator) next() byte {
	if r.pos == len(r.source) {
		return 0
	}
	return r.source[r.pos]
}

func (r *referenceEvaluator) sum() float64 {
	ret := r.product()
	for c := r.next(); c == '+' || c == '-'; c = r.next() {
		r.pos++
		rhs := r.product()
		if c == '+' {
			ret += rhs
		} else {
			ret -= rhs
		}
	}
	return ret
}

func (r *referenceEvaluator) product() float64 {
	ret := r.power()
	for c := r.next(); c == '*' || c == '/'; c = r.next() {
		r.pos++
		rhs := r.power()
		if c == '*' {
			ret *= rhs
		} else {
			if rhs == 0 {
				r.divisionByZero = true
			}
			ret /= rhs
		}
	}
	return ret
}

func (r *referenceEvaluator) power() float64 {
	ret := r.primary()
	for r.next() == '^' {
		r.pos++
		ret = math.Pow(ret, r.primary())
	}
	return ret
}

func (r *referenceEvaluator) primary() float64 {
	c := r.next()
	switch {
	case c == '(' || c == '[' || c == '{':
		r.pos++
		ret := r.sum()
		r.pos++ // closing parenthesis
		return ret
	case '0' <= c && c <= '9':
		r.pos++
		return float64(c - '0')
	default:
		r.t.Fatalf("%q: unexpected %q at %d", r.source, c, r.pos)
		return 0
	}
}

func FuzzPipeline(f *testing.F) {
	for _, seed := range []string{"3+4*2", "(1+2)*3", "-3+4", "5/0", "(1+2", "3+*4", "2^3^2", "{[1]}-(-2)"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, source string) {
		v, err := expression.Validate(source)
		if err != nil {
			t.Logf("INVALID: %q (%v)", source, err)
			return
		}

		ret, err := expression.Evaluate(expression.ToPrefix(v))
		if err != nil && !errors.Is(err, expression.ErrDivisionByZero) {
			t.Fatalf("unexpected error for %q: %v", source, err)
		}
		t.Logf("PASS: %q = %v", source, ret)
	})
}
