package calculator

import "github.com/shopspring/decimal"

type sampleItem struct {
	name     string
	count    int64
	price    string
	imported bool
	category Category
}

var sampleInputs = [][]sampleItem{
	{
		{"book", 1, "12.49", false, Book},
		{"music CD", 1, "14.99", false, Others},
		{"chocolate bar", 1, "0.85", false, Food},
	},
	{
		{"box of chocolates", 1, "10.00", true, Food},
		{"bottle of perfume", 1, "47.50", true, Others},
	},
	{
		{"bottle of perfume", 1, "27.99", true, Others},
		{"bottle of perfume", 1, "18.99", false, Others},
		{"packet of headache pills", 1, "9.75", false, Medicine},
		{"box of chocolates", 1, "11.25", true, Food},
	},
}

// SampleBills returns the three reference shopping baskets.
func SampleBills() []*Bill {
	bills := make([]*Bill, 0, len(sampleInputs))
	for _, input := range sampleInputs {
		items := make([]*LineItem, 0, len(input))
		for _, s := range input {
			item, err := NewLineItem(s.name, s.count, decimal.RequireFromString(s.price), s.imported, s.category)
			if err != nil {
				panic(err)
			}
			items = append(items, item)
		}
		bill, err := NewBill(items)
		if err != nil {
			panic(err)
		}
		bills = append(bills, bill)
	}
	return bills
}
