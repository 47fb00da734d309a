// Package calc evaluates two-operand arithmetic like "10 + 20" and exposes
// it as a request handler.
package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

type Operator int

const (
	Plus Operator = iota
	Minus
	Multiply
	Divide
)

var ErrNoMatch = errors.New("No matches")

var formulaRe = regexp.MustCompile(`(?P<val1>\d+\.?\d*)\s?(?P<op>[+\-*/])\s?(?P<val2>\d+\.?\d*)`)

func (o Operator) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

func parseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case "*":
		return Multiply, nil
	case "/":
		return Divide, nil
	default:
		return 0, fmt.Errorf("invalid operator %q", s)
	}
}

type Formula struct {
	Left  float64
	Op    Operator
	Right float64
}

// Execute follows IEEE 754, so dividing by zero gives an infinity.
func (f Formula) Execute() float64 {
	switch f.Op {
	case Plus:
		return f.Left + f.Right
	case Minus:
		return f.Left - f.Right
	case Multiply:
		return f.Left * f.Right
	default:
		return f.Left / f.Right
	}
}

// Parse finds the first "<number> <op> <number>" anywhere in input.
func Parse(input string) (Formula, error) {
	m := formulaRe.FindStringSubmatch(input)
	if m == nil {
		return Formula{}, ErrNoMatch
	}

	op, err := parseOperator(m[formulaRe.SubexpIndex("op")])
	if err != nil {
		return Formula{}, err
	}
	left, err := strconv.ParseFloat(m[formulaRe.SubexpIndex("val1")], 64)
	if err != nil {
		return Formula{}, err
	}
	right, err := strconv.ParseFloat(m[formulaRe.SubexpIndex("val2")], 64)
	if err != nil {
		return Formula{}, err
	}

	return Formula{Left: left, Op: op, Right: right}, nil
}

func Evaluate(input string) (float64, error) {
	f, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return f.Execute(), nil
}

// FormatResult prints v in its shortest form: 30, 2.5, inf, -inf, NaN.
func FormatResult(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
