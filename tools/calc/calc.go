// Package calc provides the calculate tool: a small arithmetic
// evaluator over + - * / % and parentheses. The allowed-character
// filter runs before any parsing and is the only input accepted; the
// evaluator has no variables, no functions, and no access to anything
// outside the expression text.
package calc

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	groto "github.com/Ritam-910/groto"
)

// Name is the registered tool name.
const Name = "calculate"

// Description is the tool description shown to the model.
const Description = "Perform mathematical calculations"

const allowedChars = "0123456789+-*/()%. "

// Evaluate evaluates an arithmetic expression and returns the result
// as text. Failures are returned as text too, never as an error: the
// output always goes back into model context.
func Evaluate(expression string) string {
	for _, c := range expression {
		if !strings.ContainsRune(allowedChars, c) {
			return "Error: Invalid characters in expression"
		}
	}

	p := &parser{input: expression}
	result, err := p.parse()
	if err != nil {
		return "Calculation error: " + err.Error()
	}
	return strconv.FormatFloat(result, 'f', -1, 64)
}

// Register adds the tool to a registry. Parameters: expression (string).
func Register(r *groto.ToolRegistry) {
	r.Register(Name, Description, func(_ context.Context, params map[string]any) groto.ToolResult {
		expr, _ := params["expression"].(string)
		return groto.ToolResult{Content: Evaluate(expr)}
	})
}

// parser is a recursive-descent evaluator with the usual precedence:
//
//	expr    = term   { ("+" | "-") term }
//	term    = unary  { ("*" | "/" | "%") unary }
//	unary   = { "+" | "-" } primary
//	primary = number | "(" expr ")"
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() (float64, error) {
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case '%':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	c := p.peek()
	if c == '(' {
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	return p.number()
}

func (p *parser) number() (float64, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at position %d", start)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

// peek skips spaces and returns the next byte without consuming it,
// or 0 at end of input.
func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
