package calc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{expr: "2+2", want: 4},
		{expr: "3*4-2", want: 10},
		{expr: "2+3*4", want: 14},
		{expr: "(2+3)*4", want: 20},
		{expr: "10/4", want: 2.5},
		{expr: "10 % 3", want: 1},
		{expr: "2^3^2", want: 512},
		{expr: "-2^2", want: -4},
		{expr: "(-2)^2", want: 4},
		{expr: "--3", want: 3},
		{expr: "1.5 * 2", want: 3},
		{expr: " 7 ", want: 7},
		{expr: "2*(3+(4-1))/3", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{expr: "", want: ErrEmptyExpression},
		{expr: "   ", want: ErrEmptyExpression},
		{expr: "1/0", want: ErrDivisionByZero},
		{expr: "5%0", want: ErrDivisionByZero},
		{expr: "2+abc", want: ErrInvalidExpression},
		{expr: "process.exit()", want: ErrInvalidExpression},
		{expr: "(1+2", want: ErrInvalidExpression},
		{expr: "1+2)", want: ErrInvalidExpression},
		{expr: "1+", want: ErrInvalidExpression},
		{expr: "*3", want: ErrInvalidExpression},
		{expr: "1..2", want: ErrInvalidExpression},
		{expr: "10^400", want: ErrInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Eval(tt.expr)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEvalDeepNesting(t *testing.T) {
	expr := ""
	for i := 0; i < 200; i++ {
		expr += "("
	}
	expr += "1"
	for i := 0; i < 200; i++ {
		expr += ")"
	}
	_, err := Eval(expr)
	require.ErrorIs(t, err, ErrInvalidExpression)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "4", Format(4))
	require.Equal(t, "2.5", Format(2.5))
	require.Equal(t, "0.3", Format(0.1+0.2))
	require.Equal(t, "-10", Format(-10))
	require.Equal(t, "0", Format(0))
	require.Equal(t, "1e+20", Format(1e20))
}
