// Package points computes the reward points a receipt is worth.
//
// A score is the sum of independent rules, each a pure function of the
// receipt. Rules are evaluated in order and the first failure is returned as
// a *receipt.InvalidReceiptError naming the rule and field.
package points

import "github.com/zombor/receipt-processor/internal/receipt"

// Contribution is the points one rule awarded.
type Contribution struct {
	Rule   string
	Points int
}

// Engine scores receipts against an ordered list of rules. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine with the default rules
func NewEngine() *Engine {
	return NewEngineWithRules(DefaultRules())
}

// NewEngineWithRules creates an Engine evaluating rules in the given order
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// Breakdown returns each rule's contribution in evaluation order.
func (e *Engine) Breakdown(r receipt.Receipt) ([]Contribution, error) {
	out := make([]Contribution, 0, len(e.rules))
	for _, rule := range e.rules {
		p, err := rule.Eval(r)
		if err != nil {
			return nil, err
		}
		out = append(out, Contribution{Rule: rule.Name, Points: p})
	}
	return out, nil
}

// Score returns the total points for r.
func (e *Engine) Score(r receipt.Receipt) (int, error) {
	contributions, err := e.Breakdown(r)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, c := range contributions {
		total += c.Points
	}
	return total, nil
}
