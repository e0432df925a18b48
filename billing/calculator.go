// Package billing holds the pure computation core of the textile billing
// app: amount calculation, due-date/aging resolution, bill aggregation,
// list filtering and the amount-in-words formatter. Nothing here performs
// I/O or reads the clock; "now" is always an argument.
package billing

// Amounts is the money breakdown of a bill. No rounding is applied here;
// rounding to two decimals happens only at the presentation boundary so
// that stored totals stay exact under addition.
type Amounts struct {
	Base  float64 `json:"base_amount"`
	Tax   float64 `json:"tax_amount"`
	Total float64 `json:"total_amount"`
}

// ComputeAmounts turns quantity, unit rate and a tax percentage into the
// stored amount fields. Callers guarantee meter > 0, priceRate > 0 and
// taxPercent >= 0 (0 is a legal no-tax rate); this is a total function over
// well-formed input and does not re-validate.
func ComputeAmounts(meter, priceRate, taxPercent float64) Amounts {
	base := meter * priceRate
	tax := base * taxPercent / 100
	return Amounts{Base: base, Tax: tax, Total: base + tax}
}
