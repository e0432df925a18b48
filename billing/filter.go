package billing

import (
	"sort"

	"texbill/m/domain"
)

// Filter status values. "pending" here means payment not received,
// regardless of aging; the dashboard's urgent list is the only query that
// discriminates by days_to_due.
const (
	FilterAll     = "all"
	FilterPending = "pending"
	FilterPaid    = "paid"
)

// FilterSpec narrows a bill list. Zero values mean "no constraint"; set
// fields combine with AND. Date bounds are inclusive ISO dates compared
// lexicographically, which matches chronological order for that layout.
type FilterSpec struct {
	Status   string
	BuyerID  int64
	FromDate string
	ToDate   string
}

// Filter returns the matching subset ordered by date descending (most
// recent first). The input slice is never mutated.
func Filter(bills []domain.BillView, spec FilterSpec) []domain.BillView {
	out := make([]domain.BillView, 0, len(bills))
	for _, b := range bills {
		if spec.Status == FilterPending && b.PaymentReceived {
			continue
		}
		if spec.Status == FilterPaid && !b.PaymentReceived {
			continue
		}
		if spec.BuyerID != 0 && b.BuyerID != spec.BuyerID {
			continue
		}
		if spec.FromDate != "" && b.Date < spec.FromDate {
			continue
		}
		if spec.ToDate != "" && b.Date > spec.ToDate {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Urgent returns the dashboard alert list: unpaid bills due within
// DueSoonDays, with no lower bound, so a bill overdue by months still
// surfaces. Ordered by days to due ascending (most overdue first).
func Urgent(bills []domain.BillView) []domain.BillView {
	out := make([]domain.BillView, 0)
	for _, b := range bills {
		if !b.PaymentReceived && b.DaysToDue <= DueSoonDays {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysToDue < out[j].DaysToDue
	})
	return out
}
