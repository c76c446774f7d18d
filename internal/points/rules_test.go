package points

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-processor/internal/receipt"
)

func decode(body string) receipt.Receipt {
	var r receipt.Receipt
	Expect(json.Unmarshal([]byte(body), &r)).To(Succeed())
	return r
}

func invalidReceiptError(rule, field string) func(error) bool {
	return func(err error) bool {
		var invalid *receipt.InvalidReceiptError
		return errors.As(err, &invalid) && invalid.Rule == rule && invalid.Field == field
	}
}

var _ = Describe("Rules", func() {
	Describe("DefaultRules", func() {
		It("has seven rules in evaluation order", func() {
			names := make([]string, 0)
			for _, rule := range DefaultRules() {
				names = append(names, rule.Name)
			}
			Expect(names).To(Equal([]string{
				RuleRetailerName,
				RuleRoundDollar,
				RuleQuarterMultiple,
				RuleItemPairs,
				RuleDescriptionLength,
				RuleOddDay,
				RuleAfternoon,
			}))
		})
	})

	Describe("retailerName", func() {
		DescribeTable("counts ASCII letters and digits",
			func(retailer string, expected int) {
				Expect(retailerName(receipt.Receipt{Retailer: retailer})).To(Equal(expected))
			},
			Entry("plain name", "Target", 6),
			Entry("punctuation and spaces", "M&M Corner Market", 14),
			Entry("digits", "7-Eleven", 7),
			Entry("non-ASCII letters", "Café Ñandú", 6),
			Entry("empty", "", 0),
		)

		When("the retailer is missing", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := retailerName(decode(`{}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleRetailerName, receipt.FieldRetailer), "retailer error"))
				Expect(errors.Is(err, receipt.ErrMissingField)).To(BeTrue())
			})
		})

		When("the retailer is not a string", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := retailerName(decode(`{"retailer": 123}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleRetailerName, receipt.FieldRetailer), "retailer error"))
				Expect(err).To(MatchError(ContainSubstring("expected a string, got 123")))
			})
		})

		When("the key differs in case", func() {
			It("treats the retailer as missing", func() {
				_, err := retailerName(decode(`{"Retailer": "Target"}`))
				Expect(errors.Is(err, receipt.ErrMissingField)).To(BeTrue())
			})
		})
	})

	Describe("roundDollar", func() {
		DescribeTable("awards 50 for whole dollar totals",
			func(total string, expected int) {
				Expect(roundDollar(receipt.Receipt{Total: receipt.Amount(total)})).To(Equal(expected))
			},
			Entry("with cents", "35.35", 0),
			Entry("zero cents", "9.00", 50),
			Entry("no fraction", "9", 50),
			Entry("quarter", "9.25", 0),
			Entry("zero", "0.00", 50),
		)

		When("the total is malformed", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := roundDollar(receipt.Receipt{Total: "twelve"})
				Expect(err).To(MatchError(invalidReceiptError(RuleRoundDollar, receipt.FieldTotal), "total error"))
			})
		})

		When("the total is missing", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := roundDollar(decode(`{"retailer": "Target"}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleRoundDollar, receipt.FieldTotal), "total error"))
			})
		})

		DescribeTable("reads plain decimal notation",
			func(total string, expected int) {
				Expect(roundDollar(receipt.Receipt{Total: receipt.Amount(total)})).To(Equal(expected))
			},
			Entry("leading dot", ".25", 0),
			Entry("trailing dot", "5.", 50),
			Entry("plus sign", "+1.5", 0),
			Entry("surrounding spaces", " 12.00 ", 50),
			Entry("many fraction digits", "3.000000000000000000001", 0),
			Entry("largest accepted", "999999999999999.99", 0),
		)

		DescribeTable("rejects totals that are not plain non-negative decimals",
			func(total string) {
				_, err := roundDollar(receipt.Receipt{Total: receipt.Amount(total)})
				Expect(err).To(MatchError(invalidReceiptError(RuleRoundDollar, receipt.FieldTotal), "total error"))
			},
			Entry("exponent", "1e3"),
			Entry("negative", "-1.00"),
			Entry("not a number", "NaN"),
			Entry("two dots", "1.2.3"),
			Entry("lone dot", "."),
			Entry("empty", ""),
			Entry("letters", "abc"),
			Entry("too large", "1000000000000000"),
		)

		When("the total has the wrong JSON type", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := roundDollar(decode(`{"total": true}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleRoundDollar, receipt.FieldTotal), "total error"))
				Expect(errors.Is(err, receipt.ErrMissingField)).To(BeFalse())
			})
		})
	})

	Describe("quarterMultiple", func() {
		DescribeTable("awards 25 for multiples of 0.25",
			func(total string, expected int) {
				Expect(quarterMultiple(receipt.Receipt{Total: receipt.Amount(total)})).To(Equal(expected))
			},
			Entry("not a multiple", "35.35", 0),
			Entry("whole", "9.00", 25),
			Entry("quarter", "1.25", 25),
			Entry("half", "0.50", 25),
			Entry("three quarters", "10.75", 25),
			Entry("one cent over", "1.26", 0),
			Entry("sub-cent fraction", "1.251", 0),
			Entry("trailing zeros", "1.2500", 25),
		)
	})

	Describe("itemPairs", func() {
		DescribeTable("awards 5 per pair of items",
			func(count int, expected int) {
				r := receipt.Receipt{Items: make([]receipt.Item, count)}
				Expect(itemPairs(r)).To(Equal(expected))
			},
			Entry("no items", 0, 0),
			Entry("one item", 1, 0),
			Entry("two items", 2, 5),
			Entry("four items", 4, 10),
			Entry("five items", 5, 10),
		)

		When("items are missing", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := itemPairs(decode(`{"retailer": "Target"}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleItemPairs, receipt.FieldItems), "items error"))
			})
		})

		When("items is not a list", func() {
			It("returns an InvalidReceiptError", func() {
				_, err := itemPairs(decode(`{"items": "none"}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleItemPairs, receipt.FieldItems), "items error"))
			})
		})

		When("items is an empty list", func() {
			It("awards nothing", func() {
				Expect(itemPairs(decode(`{"items": []}`))).To(Equal(0))
			})
		})
	})

	Describe("descriptionLength", func() {
		score := func(items ...receipt.Item) int {
			p, err := descriptionLength(receipt.Receipt{Items: items})
			Expect(err).NotTo(HaveOccurred())
			return p
		}

		It("ignores descriptions whose length is not a multiple of 3", func() {
			Expect(score(receipt.Item{ShortDescription: "Gatorade", Price: "2.25"})).To(Equal(0))
			Expect(score(receipt.Item{ShortDescription: "Mountain Dew 12PK", Price: "6.49"})).To(Equal(0))
		})

		It("awards ceil(price * 0.2) for a 12 character description", func() {
			Expect(score(receipt.Item{ShortDescription: "Hello World!", Price: "10.00"})).To(Equal(2))
		})

		It("trims whitespace before measuring", func() {
			Expect(score(receipt.Item{ShortDescription: "   Klarbrunn 12-PK 12 FL OZ  ", Price: "12.00"})).To(Equal(3))
		})

		It("rounds up fractional points", func() {
			Expect(score(receipt.Item{ShortDescription: "Emils Cheese Pizza", Price: "12.25"})).To(Equal(3))
		})

		DescribeTable("rounds price * 0.2 up to whole points",
			func(price string, expected int) {
				Expect(score(receipt.Item{ShortDescription: "abc", Price: receipt.Amount(price)})).To(Equal(expected))
			},
			Entry("exact", "10.00", 2),
			Entry("one cent over", "10.01", 3),
			Entry("fractional", "12.25", 3),
			Entry("smallest", "0.01", 1),
			Entry("zero", "0", 0),
			Entry("zero cents", "0.00", 0),
			Entry("numeric JSON text", "6", 2),
		)

		It("counts empty descriptions as a multiple of 3", func() {
			Expect(score(receipt.Item{ShortDescription: "   ", Price: "4.00"})).To(Equal(1))
		})

		It("counts characters rather than bytes", func() {
			Expect(score(receipt.Item{ShortDescription: "Açaí", Price: "5.00"})).To(Equal(0))
			Expect(score(receipt.Item{ShortDescription: "Açaí B", Price: "5.00"})).To(Equal(1))
		})

		It("sums over all items", func() {
			Expect(score(
				receipt.Item{ShortDescription: "abc", Price: "5.00"},
				receipt.Item{ShortDescription: "abcdef", Price: "5.01"},
				receipt.Item{ShortDescription: "abcd", Price: "100.00"},
			)).To(Equal(3))
		})

		When("an item price is malformed", func() {
			It("names the item in the error", func() {
				_, err := descriptionLength(receipt.Receipt{Items: []receipt.Item{
					{ShortDescription: "abc", Price: "1.00"},
					{ShortDescription: "abcd", Price: "n/a"},
				}})
				Expect(err).To(MatchError(invalidReceiptError(RuleDescriptionLength, "items[1].price"), "price error"))
			})
		})

		When("an item description is missing", func() {
			It("names the item in the error", func() {
				_, err := descriptionLength(decode(`{"items": [{"price": "1.00"}]}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleDescriptionLength, "items[0].shortDescription"), "description error"))
			})
		})

		DescribeTable("names items of the wrong JSON type",
			func(body, field string) {
				_, err := descriptionLength(decode(body))
				Expect(err).To(MatchError(invalidReceiptError(RuleDescriptionLength, field), "item error"))
			},
			Entry("null item", `{"items": [null]}`, "items[0].shortDescription"),
			Entry("string item", `{"items": [{"shortDescription": "abc", "price": "1.00"}, "Gatorade"]}`, "items[1].shortDescription"),
			Entry("object price", `{"items": [{"shortDescription": "abc", "price": {}}]}`, "items[0].price"),
			Entry("negative price", `{"items": [{"shortDescription": "abcd", "price": -1}]}`, "items[0].price"),
		)

		When("an item price is missing", func() {
			It("names the item in the error", func() {
				_, err := descriptionLength(decode(`{"items": [{"shortDescription": "abc"}]}`))
				Expect(err).To(MatchError(invalidReceiptError(RuleDescriptionLength, "items[0].price"), "price error"))
			})
		})
	})

	Describe("oddDay", func() {
		DescribeTable("awards 6 for odd days",
			func(date string, expected int) {
				Expect(oddDay(receipt.Receipt{PurchaseDate: date})).To(Equal(expected))
			},
			Entry("first of the month", "2022-01-01", 6),
			Entry("even day", "2022-03-20", 0),
			Entry("thirty-first", "2022-03-31", 6),
			Entry("leap day", "2024-02-29", 6),
		)

		DescribeTable("rejects malformed dates",
			func(date string) {
				_, err := oddDay(receipt.Receipt{PurchaseDate: date})
				Expect(err).To(MatchError(invalidReceiptError(RuleOddDay, receipt.FieldPurchaseDate), "date error"))
			},
			Entry("wrong format", "01/01/2022"),
			Entry("impossible day", "2022-02-30"),
			Entry("unpadded month and day", "2022-1-1"),
			Entry("unpadded day", "2022-01-1"),
			Entry("empty", ""),
		)
	})

	Describe("afternoon", func() {
		DescribeTable("awards 10 strictly between 14:00 and 16:00",
			func(t string, expected int) {
				Expect(afternoon(receipt.Receipt{PurchaseTime: t})).To(Equal(expected))
			},
			Entry("just after two", "14:01", 10),
			Entry("exactly two", "14:00", 0),
			Entry("exactly four", "16:00", 0),
			Entry("just before four", "15:59", 10),
			Entry("morning", "09:30", 0),
			Entry("early afternoon", "13:01", 0),
			Entry("unpadded hour", "2:30", 0),
		)

		DescribeTable("rejects malformed times",
			func(t string) {
				_, err := afternoon(receipt.Receipt{PurchaseTime: t})
				Expect(err).To(MatchError(invalidReceiptError(RuleAfternoon, receipt.FieldPurchaseTime), "time error"))
			},
			Entry("twelve hour clock", "2:30 PM"),
			Entry("out of range", "25:00"),
			Entry("unpadded minute", "14:5"),
			Entry("empty", ""),
		)
	})
})
