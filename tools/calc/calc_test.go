package calc

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"addition", "2 + 2", "4"},
		{"precedence", "2 + 3 * 4", "14"},
		{"parentheses", "(2 + 3) * 4", "20"},
		{"division", "5 / 2", "2.5"},
		{"integer division result", "10 / 5", "2"},
		{"modulo", "10 % 3", "1"},
		{"unary minus", "-5 + 3", "-2"},
		{"double unary", "--5", "5"},
		{"unary plus", "+5", "5"},
		{"decimal", "0.1 + 0.2", "0.30000000000000004"},
		{"nested parens", "((1 + 2) * (3 + 4))", "21"},
		{"spaces", "  7  -  2  ", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.expr); got != tt.want {
				t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateInvalidCharacters(t *testing.T) {
	exprs := []string{
		"2 + x",
		"__import__('os')",
		"1; 2",
		"pow(2, 10)",
	}
	for _, expr := range exprs {
		if got := Evaluate(expr); got != "Error: Invalid characters in expression" {
			t.Errorf("Evaluate(%q) = %q, want invalid characters error", expr, got)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"division by zero", "1 / 0", "Calculation error: division by zero"},
		{"modulo by zero", "1 % 0", "Calculation error: modulo by zero"},
		{"empty", "", "Calculation error: expected number at position 0"},
		{"unclosed paren", "(1 + 2", "Calculation error: missing closing parenthesis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.expr); got != tt.want {
				t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateTrailingGarbage(t *testing.T) {
	got := Evaluate("1 + 2 3")
	if got == "3" {
		t.Fatalf("trailing input silently ignored: %q", got)
	}
	if len(got) < len("Calculation error: ") || got[:len("Calculation error: ")] != "Calculation error: " {
		t.Errorf("Evaluate = %q, want calculation error", got)
	}
}
