package report_test

import (
	"strings"
	"testing"

	"github.com/karupanerura/prefixcalc/internal/equation"
	"github.com/karupanerura/prefixcalc/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processAll(infixes ...string) []*equation.Equation {
	equations := make([]*equation.Equation, len(infixes))
	for i, infix := range infixes {
		equations[i] = equation.Process(infix)
	}
	return equations
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, report.WriteTable(&b, processAll("3+4*2", "(1+2", "5/0")))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"Equation", "No.", "Equation", "infix", "Validity", "Equation", "prefix", "Result"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "3+4*2", "valid", "+", "3.00", "*", "4.00", "2.00", "11.00"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "(1+2", "invalid", "-", "-"}, strings.Fields(lines[3]))
	assert.Contains(t, lines[4], equation.DivisionByZeroMessage)
}

func TestWriteListings(t *testing.T) {
	t.Parallel()

	equations := processAll("3+4*2", "3+*4", "5/0")

	var validity strings.Builder
	require.NoError(t, report.WriteValidity(&validity, equations))
	assert.Equal(t, "Equation No.1 -> valid.\n"+
		"Equation No.2 -> invalid: consecutive operators \"+*\" at position 3.\n"+
		"Equation No.3 -> valid.\n", validity.String())

	var prefixes strings.Builder
	require.NoError(t, report.WritePrefixes(&prefixes, equations))
	assert.Equal(t, "Equation No.1 to prefix: + 3.00 * 4.00 2.00\n"+
		"Equation No.3 to prefix: / 5.00 0.00\n", prefixes.String())

	var results strings.Builder
	require.NoError(t, report.WriteResults(&results, equations))
	assert.Equal(t, "Equation No.1 -> 11.00\n"+
		"Equation No.3 -> "+equation.DivisionByZeroMessage+"\n", results.String())

	var invalid strings.Builder
	require.NoError(t, report.WriteInvalid(&invalid, equations))
	assert.Equal(t, "3+*4\n", invalid.String())
}
