package points

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-processor/internal/receipt"
)

// Rule names, in evaluation order.
const (
	RuleRetailerName      = "retailer-name"
	RuleRoundDollar       = "round-dollar"
	RuleQuarterMultiple   = "quarter-multiple"
	RuleItemPairs         = "item-pairs"
	RuleDescriptionLength = "description-length"
	RuleOddDay            = "odd-day"
	RuleAfternoon         = "afternoon"
)

// Layouts are strict: month, day and minute must be zero-padded.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	afternoonStart = 14 * 60
	afternoonEnd   = 16 * 60
)

// Rule is one independent, additive contribution to a receipt's score.
// Eval must not modify the receipt.
type Rule struct {
	Name string
	Eval func(r receipt.Receipt) (int, error)
}

// DefaultRules returns the active scoring rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleRetailerName, Eval: retailerName},
		{Name: RuleRoundDollar, Eval: roundDollar},
		{Name: RuleQuarterMultiple, Eval: quarterMultiple},
		{Name: RuleItemPairs, Eval: itemPairs},
		{Name: RuleDescriptionLength, Eval: descriptionLength},
		{Name: RuleOddDay, Eval: oddDay},
		{Name: RuleAfternoon, Eval: afternoon},
	}
}

func invalid(rule, field string, err error) error {
	return &receipt.InvalidReceiptError{Rule: rule, Field: field, Err: err}
}

// check returns an InvalidReceiptError if field was not usable on r.
func check(rule string, r receipt.Receipt, field string) error {
	if err := r.Problem(field); err != nil {
		return invalid(rule, field, err)
	}
	return nil
}

// retailerName awards one point per ASCII letter or digit in the retailer.
func retailerName(r receipt.Receipt) (int, error) {
	if err := check(RuleRetailerName, r, receipt.FieldRetailer); err != nil {
		return 0, err
	}

	n := 0
	for i := 0; i < len(r.Retailer); i++ {
		c := r.Retailer[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			n++
		}
	}
	return n, nil
}

func total(rule string, r receipt.Receipt) (decimal.Decimal, error) {
	if err := check(rule, r, receipt.FieldTotal); err != nil {
		return decimal.Decimal{}, err
	}
	d, err := parseAmount(r.Total)
	if err != nil {
		return decimal.Decimal{}, invalid(rule, receipt.FieldTotal, err)
	}
	return d, nil
}

// roundDollar awards 50 points when the total has no cents.
func roundDollar(r receipt.Receipt) (int, error) {
	d, err := total(RuleRoundDollar, r)
	if err != nil {
		return 0, err
	}
	if d.IsInteger() {
		return 50, nil
	}
	return 0, nil
}

// quarterMultiple awards 25 points when the total is a multiple of 0.25,
// tested as integer cents modulo 25.
func quarterMultiple(r receipt.Receipt) (int, error) {
	d, err := total(RuleQuarterMultiple, r)
	if err != nil {
		return 0, err
	}
	if d.Mul(hundred).Mod(quarterCents).IsZero() {
		return 25, nil
	}
	return 0, nil
}

func items(rule string, r receipt.Receipt) ([]receipt.Item, error) {
	if err := check(rule, r, receipt.FieldItems); err != nil {
		return nil, err
	}
	return r.Items, nil
}

// itemPairs awards 5 points for every two items.
func itemPairs(r receipt.Receipt) (int, error) {
	list, err := items(RuleItemPairs, r)
	if err != nil {
		return 0, err
	}
	return 5 * (len(list) / 2), nil
}

// descriptionLength awards ceil(price * 0.2) for each item whose trimmed
// description length is a multiple of 3. An empty description counts.
// Every item's price must parse, whether or not it qualifies.
func descriptionLength(r receipt.Receipt) (int, error) {
	list, err := items(RuleDescriptionLength, r)
	if err != nil {
		return 0, err
	}

	points := 0
	for n, item := range list {
		for _, field := range []string{receipt.FieldShortDescription, receipt.FieldPrice} {
			if err := item.Problem(field); err != nil {
				return 0, invalid(RuleDescriptionLength, itemField(n, field), err)
			}
		}
		price, err := parseAmount(item.Price)
		if err != nil {
			return 0, invalid(RuleDescriptionLength, itemField(n, receipt.FieldPrice), err)
		}

		desc := strings.TrimSpace(item.ShortDescription)
		if utf8.RuneCountInString(desc)%3 == 0 {
			points += int(price.Mul(fifth).Ceil().IntPart())
		}
	}
	return points, nil
}

func itemField(n int, field string) string {
	return fmt.Sprintf("%s[%d].%s", receipt.FieldItems, n, field)
}

// oddDay awards 6 points when the purchase day of month is odd.
func oddDay(r receipt.Receipt) (int, error) {
	if err := check(RuleOddDay, r, receipt.FieldPurchaseDate); err != nil {
		return 0, err
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(r.PurchaseDate))
	if err != nil {
		return 0, invalid(RuleOddDay, receipt.FieldPurchaseDate, err)
	}
	if date.Day()%2 == 1 {
		return 6, nil
	}
	return 0, nil
}

// afternoon awards 10 points when the purchase time falls strictly between
// 14:00 and 16:00.
func afternoon(r receipt.Receipt) (int, error) {
	if err := check(RuleAfternoon, r, receipt.FieldPurchaseTime); err != nil {
		return 0, err
	}
	t, err := time.Parse(timeLayout, strings.TrimSpace(r.PurchaseTime))
	if err != nil {
		return 0, invalid(RuleAfternoon, receipt.FieldPurchaseTime, err)
	}
	if m := t.Hour()*60 + t.Minute(); m > afternoonStart && m < afternoonEnd {
		return 10, nil
	}
	return 0, nil
}
