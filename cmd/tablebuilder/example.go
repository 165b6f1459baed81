package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bjaus/tablebuilder"
)

type cartItem struct {
	Category string
	Name     string
	Qty      int
	Price    decimal.Decimal
}

// Total is the line total.
func (c cartItem) Total() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Qty)))
}

var cart = []cartItem{
	{"fruit", "Apple", 3, decimal.RequireFromString("0.50")},
	{"bakery", "Bread", 1, decimal.RequireFromString("2.25")},
	{"fruit", "Banana", 6, decimal.RequireFromString("0.25")},
	{"dairy", "Milk", 2, decimal.RequireFromString("1.10")},
	{"bakery", "Croissant", 4, decimal.RequireFromString("1.30")},
	{"dairy", "Refund", -1, decimal.RequireFromString("1.10")},
}

// cartSpec is the demo table: categories colored by value, currency
// columns and summed footers.
func cartSpec() *tablebuilder.Spec {
	money := tablebuilder.Currency("$", 2)
	return tablebuilder.MustSpec(
		tablebuilder.MustField("category", "Category",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Category")),
			tablebuilder.WithFormatter(tablebuilder.RainbowByValue().Format),
			tablebuilder.WithFooter("Total"),
		),
		tablebuilder.MustField("item", "Item",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Name")),
			tablebuilder.WithFooter(tablebuilder.Count),
		),
		tablebuilder.MustField("qty", "Qty",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Qty")),
			tablebuilder.WithFooter(tablebuilder.Sum),
			tablebuilder.WithJustify(tablebuilder.JustifyRight),
		),
		tablebuilder.MustField("price", "Price",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Price")),
			tablebuilder.WithFormatter(money),
			tablebuilder.WithFooter(tablebuilder.Mean),
			tablebuilder.WithJustify(tablebuilder.JustifyRight),
		),
		tablebuilder.MustField("total", "Total",
			tablebuilder.WithKey(tablebuilder.Obj.Attr("Total")),
			tablebuilder.WithFormatter(money),
			tablebuilder.WithFooter(tablebuilder.Sum),
			tablebuilder.WithJustify(tablebuilder.JustifyRight),
			tablebuilder.WithStyle("bold"),
		),
	)
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Render a built-in shopping cart table",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(cmd)
			if err != nil {
				return err
			}
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			b := cartSpec().Builder(
				tablebuilder.Title("Cart"),
				tablebuilder.Caption("prices in USD"),
				tablebuilder.ShowFooter(true),
				tablebuilder.SectionBy(func(r any) string { return r.(cartItem).Category }),
			)
			t, err := b.Build(tablebuilder.Records(cart), opts...)
			if err != nil {
				return err
			}
			return tablebuilder.Write(cmd.OutOrStdout(), format, t)
		},
	}
}
