package receipt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// JSON field names of a submitted receipt.
const (
	FieldRetailer         = "retailer"
	FieldPurchaseDate     = "purchaseDate"
	FieldPurchaseTime     = "purchaseTime"
	FieldTotal            = "total"
	FieldItems            = "items"
	FieldShortDescription = "shortDescription"
	FieldPrice            = "price"
)

var errNotObject = errors.New("expected a JSON object")

// fieldProblem records why a submitted field can't be used.
type fieldProblem struct {
	field string
	err   error
}

// problems is kept in decode order so equal inputs decode to equal receipts.
type problems []fieldProblem

func (p problems) lookup(field string) error {
	for _, fp := range p {
		if fp.field == field {
			return fp.err
		}
	}
	return nil
}

func (p *problems) add(field string, err error) {
	*p = append(*p, fieldProblem{field: field, err: err})
}

// Receipt represents a submitted purchase receipt
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"` // YYYY-MM-DD
	PurchaseTime string `json:"purchaseTime"` // HH:MM, 24-hour
	Total        Amount `json:"total"`
	Items        []Item `json:"items"`

	// fields that were absent, null or of the wrong JSON type
	problems problems
}

// Item represents a single line item on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            Amount `json:"price"`

	problems problems
}

// Problem returns why field can't be used, or nil if it was supplied with
// the right JSON type. Absent and null fields report ErrMissingField.
// Receipts built in Go have no problems; only JSON decoding records them.
func (r Receipt) Problem(field string) error {
	return r.problems.lookup(field)
}

// Problem returns why the item's field can't be used, or nil.
func (i Item) Problem(field string) error {
	return i.problems.lookup(field)
}

// UnmarshalJSON decodes a receipt. Only a body that is not a JSON object is
// an error; absent or mistyped fields are recorded and reported when the
// receipt is scored.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}

	*r = Receipt{}
	r.Retailer = decodeString(fields, FieldRetailer, &r.problems)
	r.PurchaseDate = decodeString(fields, FieldPurchaseDate, &r.problems)
	r.PurchaseTime = decodeString(fields, FieldPurchaseTime, &r.problems)
	r.Total = decodeAmount(fields, FieldTotal, &r.problems)
	r.Items = decodeItems(fields, &r.problems)
	return nil
}

// UnmarshalJSON decodes an item, recording absent or mistyped fields.
func (i *Item) UnmarshalJSON(data []byte) error {
	*i = decodeItem(data)
	return nil
}

func decodeItem(data []byte) Item {
	var item Item
	fields, err := decodeObject(data)
	if err != nil {
		item.problems.add(FieldShortDescription, err)
		item.problems.add(FieldPrice, err)
		return item
	}
	item.ShortDescription = decodeString(fields, FieldShortDescription, &item.problems)
	item.Price = decodeAmount(fields, FieldPrice, &item.problems)
	return item
}

// decodeObject splits a JSON object into its raw values. Keys match
// exactly; encoding/json's case-insensitive matching is not used.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	if isNull(data) {
		return nil, errNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	return fields, nil
}

// lookupField returns the raw value of key, recording it as missing when it
// is absent or null.
func lookupField(fields map[string]json.RawMessage, key string, p *problems) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		p.add(key, ErrMissingField)
		return nil, false
	}
	return raw, true
}

func decodeString(fields map[string]json.RawMessage, key string, p *problems) string {
	raw, ok := lookupField(fields, key, p)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		p.add(key, fmt.Errorf("expected a string, got %s", raw))
		return ""
	}
	return s
}

func decodeAmount(fields map[string]json.RawMessage, key string, p *problems) Amount {
	raw, ok := lookupField(fields, key, p)
	if !ok {
		return ""
	}
	var a Amount
	if err := a.UnmarshalJSON(raw); err != nil {
		p.add(key, err)
		return ""
	}
	return a
}

func decodeItems(fields map[string]json.RawMessage, p *problems) []Item {
	raw, ok := lookupField(fields, FieldItems, p)
	if !ok {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		p.add(FieldItems, fmt.Errorf("expected a list, got %s", raw))
		return nil
	}

	items := make([]Item, len(list))
	for n, item := range list {
		items[n] = decodeItem(item)
	}
	return items
}

// clone returns a deep copy so stored receipts can't be changed through a
// caller's slice.
func (r Receipt) clone() Receipt {
	c := r
	c.problems = slices.Clone(r.problems)
	if r.Items != nil {
		c.Items = make([]Item, len(r.Items))
		for n, item := range r.Items {
			item.problems = slices.Clone(item.problems)
			c.Items[n] = item
		}
	}
	return c
}

// Amount is a monetary value kept as the decimal text it was submitted as.
// It decodes from either a JSON string or a JSON number; the text is only
// interpreted when the receipt is scored.
type Amount string

// UnmarshalJSON accepts "12.25" or 12.25.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("decoding amount: empty value")
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding amount: %w", err)
		}
		*a = Amount(s)
	case c == '-' || (c >= '0' && c <= '9'):
		*a = Amount(data)
	default:
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	return nil
}

// String returns the amount as submitted.
func (a Amount) String() string {
	return string(a)
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
