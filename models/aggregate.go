package models

import "github.com/shopspring/decimal"

// Derived aggregates. Pure functions over the embedded collections: no I/O,
// recomputed on every read so they can never go stale after a mutation.
// Accumulation runs on decimals to keep financial totals exact across many
// small line items.

// TotalExpense sums expense amounts.
func TotalExpense(c *Crop) float64 {
	sum := decimal.Zero
	for i := range c.Expenses {
		sum = sum.Add(decimal.NewFromFloat(c.Expenses[i].Amount))
	}
	return sum.Round(2).InexactFloat64()
}

// TotalSales sums sale amounts. Zero when the crop has no sales.
func TotalSales(c *Crop) float64 {
	sum := decimal.Zero
	for i := range c.Sales {
		sum = sum.Add(decimal.NewFromFloat(c.Sales[i].Amount))
	}
	return sum.Round(2).InexactFloat64()
}

// Profit is totalSales - totalExpense. Negative means a loss.
func Profit(c *Crop) float64 {
	sales := decimal.Zero
	for i := range c.Sales {
		sales = sales.Add(decimal.NewFromFloat(c.Sales[i].Amount))
	}
	expenses := decimal.Zero
	for i := range c.Expenses {
		expenses = expenses.Add(decimal.NewFromFloat(c.Expenses[i].Amount))
	}
	return sales.Sub(expenses).Round(2).InexactFloat64()
}

// CostPerUnit is totalExpense / landArea, 0 when landArea is not positive.
func CostPerUnit(c *Crop) float64 {
	if c.LandArea <= 0 {
		return 0
	}
	expenses := decimal.Zero
	for i := range c.Expenses {
		expenses = expenses.Add(decimal.NewFromFloat(c.Expenses[i].Amount))
	}
	return expenses.DivRound(decimal.NewFromFloat(c.LandArea), 2).InexactFloat64()
}

// Derive fills the injected-only aggregate fields before encoding.
func (c *Crop) Derive() *Crop {
	c.TotalExpense = TotalExpense(c)
	c.TotalSales = TotalSales(c)
	c.Profit = Profit(c)
	c.CostPerUnit = CostPerUnit(c)
	return c
}
