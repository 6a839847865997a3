package equation

import (
	"errors"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/karupanerura/prefixcalc/internal/expression"
)

const DivisionByZeroMessage = "Math Error, can't divide by zero."

// Equation is one infix expression read from the input and what the pipeline made of it.
// Prefix is set only when Valid, Result only when Prefix is set and the evaluation succeeded.
type Equation struct {
	Infix          string
	Valid          bool
	Diagnostic     string
	Prefix         *expression.Prefix
	Result         *float64
	DivisionByZero bool
	Err            error
}

// Process runs validation, prefix conversion and evaluation for one infix expression.
func Process(infix string) *Equation {
	eq := &Equation{Infix: infix}

	v, err := expression.Validate(infix)
	if err != nil {
		eq.Err = err
		var syntaxErr *expression.SyntaxError
		if errors.As(err, &syntaxErr) {
			eq.Diagnostic = syntaxErr.Error()
		} else {
			eq.Diagnostic = err.Error()
		}
		return eq
	}
	eq.Valid = true
	eq.Prefix = expression.ToPrefix(v)

	ret, err := expression.Evaluate(eq.Prefix)
	if err != nil {
		eq.Err = err
		eq.DivisionByZero = errors.Is(err, expression.ErrDivisionByZero)
		return eq
	}
	eq.Result = &ret
	return eq
}

func (e *Equation) ValidityString() string {
	if e.Valid {
		return "valid"
	}
	return "invalid"
}

func (e *Equation) PrefixString() string {
	if e.Prefix == nil {
		return "-"
	}
	return e.Prefix.String()
}

func (e *Equation) ResultString() string {
	switch {
	case e.DivisionByZero:
		return DivisionByZeroMessage
	case e.Result == nil:
		return "-"
	default:
		return strconv.FormatFloat(*e.Result, 'f', 2, 64)
	}
}

type equationJSON struct {
	Infix          string             `json:"infix"`
	Valid          bool               `json:"valid"`
	Diagnostic     string             `json:"diagnostic,omitempty"`
	Prefix         *expression.Prefix `json:"prefix,omitempty"`
	Result         any                `json:"result,omitempty"`
	DivisionByZero bool               `json:"divisionByZero,omitempty"`
}

func (e *Equation) MarshalJSON() ([]byte, error) {
	v := equationJSON{
		Infix:          e.Infix,
		Valid:          e.Valid,
		Diagnostic:     e.Diagnostic,
		Prefix:         e.Prefix,
		DivisionByZero: e.DivisionByZero,
	}
	if e.Result != nil {
		if r := *e.Result; math.IsInf(r, 0) || math.IsNaN(r) {
			v.Result = strconv.FormatFloat(r, 'f', -1, 64) // JSON has no literal for these
		} else {
			v.Result = r
		}
	}
	return json.Marshal(v)
}
