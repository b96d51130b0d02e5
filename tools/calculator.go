package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Calculator error strings, returned as results rather than errors so a
// malformed expression degrades the turn instead of failing it.
const (
	calcErrNoExpression = "error: no valid arithmetic expression found"
	calcErrEvalFailed   = "error: could not evaluate the expression"
)

// Calculator evaluates basic arithmetic extracted from free-form text.
// The evaluator is a dedicated grammar over the four operators and
// parentheses; there is no name lookup or call syntax, so arbitrary code
// can never reach it.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) ToolName() string { return NameCalculator }

func (c *Calculator) ToolDescription() string {
	return "Evaluates arithmetic expressions using + - * / and parentheses"
}

func (c *Calculator) Call(ctx context.Context, input string) (string, error) {
	expr := ExtractExpression(input)
	if expr == "" {
		expr = input
	}
	expr = strings.TrimSpace(sanitizeExpression(expr))
	if expr == "" {
		return calcErrNoExpression, nil
	}

	value, err := evaluate(expr)
	if err != nil {
		return calcErrEvalFailed, nil
	}

	return fmt.Sprintf("%s = %s", expr, strconv.FormatFloat(value, 'f', -1, 64)), nil
}

// ExtractExpression returns the longest contiguous run of expression
// characters that contains at least one digit, or "" when none exists.
func ExtractExpression(text string) string {
	var best, current []rune
	for _, r := range text {
		if isExpressionRune(r) {
			current = append(current, r)
			continue
		}
		if moreArithmetic(current, best) {
			best = current
		}
		current = nil
	}
	if moreArithmetic(current, best) {
		best = current
	}
	return string(best)
}

func moreArithmetic(candidate, best []rune) bool {
	if !containsDigit(candidate) {
		return false
	}
	return len(candidate) > len(best)
}

func containsDigit(runes []rune) bool {
	for _, r := range runes {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func isExpressionRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')' || r == '.':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}

// sanitizeExpression strips every rune outside the allowed set.
func sanitizeExpression(expr string) string {
	var b strings.Builder
	for _, r := range expr {
		if isExpressionRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// evaluate parses and computes a sanitized expression with a small
// recursive-descent parser:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = { "+" | "-" } primary
//	primary = number | "(" expr ")"
func evaluate(expr string) (float64, error) {
	p := &exprParser{input: []rune(expr)}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

type exprParser struct {
	input []rune
	pos   int
}

func (p *exprParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.peek() == '+' {
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		} else if p.peek() == '-' {
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		} else {
			return value, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	value, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.peek() == '*' {
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value *= rhs
		} else if p.peek() == '/' {
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			value /= rhs
		} else {
			return value, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		value, err := p.parseUnary()
		return -value, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	sawDigit := false
	sawDot := false
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		if r >= '0' && r <= '9' {
			sawDigit = true
			p.pos++
		} else if r == '.' && !sawDot {
			sawDot = true
			p.pos++
		} else {
			break
		}
	}
	if !sawDigit {
		return 0, errors.New("expected a number")
	}
	return strconv.ParseFloat(string(p.input[start:p.pos]), 64)
}

func (p *exprParser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}
