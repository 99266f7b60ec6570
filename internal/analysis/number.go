package analysis

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxFactorialInput is the largest n for which n! fits in an int64.
const maxFactorialInput = 20

// NumberResult holds the computed fields for a numeric input.
type NumberResult struct {
	Input     int64   `json:"input"`
	Square    int64   `json:"square"`
	Sqrt      float64 `json:"sqrt"`
	Factorial int64   `json:"factorial"`
}

// AnalyzeNumber parses the input as an integer and computes its square,
// square root and factorial.
func AnalyzeNumber(ctx context.Context, input string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("input is not a valid integer: %q", input)
	}

	if n < 0 {
		return nil, fmt.Errorf("factorial is undefined for negative numbers: %d", n)
	}
	if n > maxFactorialInput {
		return nil, fmt.Errorf("factorial input too large: %d exceeds %d", n, maxFactorialInput)
	}

	factorial := int64(1)
	for i := int64(2); i <= n; i++ {
		factorial *= i
	}

	return &NumberResult{
		Input:     n,
		Square:    n * n,
		Sqrt:      math.Sqrt(float64(n)),
		Factorial: factorial,
	}, nil
}
