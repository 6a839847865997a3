package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/karupanerura/prefixcalc/internal/equation"
)

// WriteTable writes every equation with its validity, prefix form and result.
func WriteTable(w io.Writer, equations []*equation.Equation) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"Equation No.", "Equation infix", "Validity", "Equation prefix", "Result"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for i, eq := range equations {
		row := []string{
			fmt.Sprintf("%d", i+1),
			eq.Infix,
			eq.ValidityString(),
			eq.PrefixString(),
			eq.ResultString(),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// WriteValidity writes one verdict line per equation.
func WriteValidity(w io.Writer, equations []*equation.Equation) error {
	for i, eq := range equations {
		var err error
		if eq.Valid {
			_, err = fmt.Fprintf(w, "Equation No.%d -> valid.\n", i+1)
		} else {
			_, err = fmt.Fprintf(w, "Equation No.%d -> invalid: %s.\n", i+1, eq.Diagnostic)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WritePrefixes writes the prefix form of the valid equations.
func WritePrefixes(w io.Writer, equations []*equation.Equation) error {
	for i, eq := range equations {
		if !eq.Valid {
			continue
		}
		if _, err := fmt.Fprintf(w, "Equation No.%d to prefix: %s\n", i+1, eq.PrefixString()); err != nil {
			return err
		}
	}
	return nil
}

// WriteResults writes the evaluation result of the valid equations.
func WriteResults(w io.Writer, equations []*equation.Equation) error {
	for i, eq := range equations {
		if !eq.Valid {
			continue
		}
		if _, err := fmt.Fprintf(w, "Equation No.%d -> %s\n", i+1, eq.ResultString()); err != nil {
			return err
		}
	}
	return nil
}

// WriteInvalid writes the infix form of the invalid equations, one per line.
func WriteInvalid(w io.Writer, equations []*equation.Equation) error {
	for _, eq := range equation.Invalid(equations) {
		if _, err := fmt.Fprintln(w, eq.Infix); err != nil {
			return err
		}
	}
	return nil
}
