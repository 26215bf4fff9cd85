package tools

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/cinegraph/cinegraph/pkg/types"
)

// calculatorSanitizer strips everything outside digits, the four basic
// operators, parentheses, decimal points and whitespace. No identifier or
// call syntax can survive the strip, so the evaluated expression is pure
// arithmetic.
var calculatorSanitizer = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// CalculatorTool evaluates sanitised arithmetic expressions.
type CalculatorTool struct{}

// NewCalculatorTool creates the calculator tool.
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

// Definition implements Tool.
func (t *CalculatorTool) Definition() types.ToolDefinition {
	return types.ToolDefinition{
		Name: "calculator",
		Description: "Perform mathematical calculations. Supports basic operations: " +
			"+, -, *, /, ** (power), and parentheses. Example: '2 + 2', '10 * 5', '(3 + 4) * 2'.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Mathematical expression to evaluate (e.g., '2 + 2', '10 * 5')",
				},
			},
			"required": []string{"expression"},
		},
	}
}

// ErrorVerb implements Tool.
func (t *CalculatorTool) ErrorVerb() string { return "calculating" }

// Run implements Tool.
func (t *CalculatorTool) Run(ctx context.Context, args map[string]any) (string, error) {
	expression := stringArg(args, "expression")

	sanitized := strings.TrimSpace(calculatorSanitizer.ReplaceAllString(expression, ""))
	if sanitized == "" {
		return "", fmt.Errorf("expression is empty after sanitization")
	}

	result, err := evalArithmetic(sanitized)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Result: %v", result), nil
}

// evalArithmetic compiles and runs the sanitised expression with no
// environment, so only literals and operators are resolvable. expr divides as
// floating point, so a zero divisor yields Inf or NaN rather than an error;
// non-finite results are rejected here so division by zero surfaces as an
// error like any malformed expression.
func evalArithmetic(sanitized string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("invalid expression: %v", r)
		}
	}()

	program, err := expr.Compile(sanitized)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	result, err = expr.Run(program, nil)
	if err != nil {
		return nil, err
	}

	if f, ok := result.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil, fmt.Errorf("division by zero")
	}
	return result, nil
}
