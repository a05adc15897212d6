package output

import (
	"fmt"
	"unicode/utf8"
)

// DefaultBudget is the context window findings are measured against.
const DefaultBudget = 128000

// CharsPerToken approximates the character to token ratio of mixed prose and code.
const CharsPerToken = 4.0

// TokenEstimate describes how much of a context window a text would use.
type TokenEstimate struct {
	Tokens       int
	Budget       int
	UsagePercent float64
}

// EstimateTokens returns an approximate token count for text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return int(float64(utf8.RuneCountInString(text))/CharsPerToken + 0.5)
}

// Estimate measures text against budget, or DefaultBudget when budget is not positive.
func Estimate(text string, budget int) TokenEstimate {
	if budget <= 0 {
		budget = DefaultBudget
	}
	tokens := EstimateTokens(text)
	return TokenEstimate{
		Tokens:       tokens,
		Budget:       budget,
		UsagePercent: float64(tokens) / float64(budget) * 100,
	}
}

func (e TokenEstimate) String() string {
	return fmt.Sprintf("~%s tokens (%.1f%% of %s)", FormatTokenCount(e.Tokens), e.UsagePercent, FormatTokenCount(e.Budget))
}

// FormatTokenCount formats counts of 1000 and above as "X.Xk".
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("%d", tokens)
	}
	return fmt.Sprintf("%.1fk", float64(tokens)/1000)
}
