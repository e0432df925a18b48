package billing

import "time"

// DateLayout is the calendar-date format used everywhere: it sorts
// lexicographically in chronological order.
const DateLayout = "2006-01-02"

// DueSoonDays is the aging window: an unpaid bill due within this many days
// (inclusive) counts as due-soon.
const DueSoonDays = 5

// Status of a bill, derived and never stored.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusDueSoon Status = "due-soon"
	StatusPending Status = "pending"
)

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveDueDate returns the date the bill falls due: billDate plus the
// dhara's credit period in calendar days. termDays may be 0 (cash terms,
// due the same day).
func ResolveDueDate(billDate time.Time, termDays int) time.Time {
	return billDate.AddDate(0, 0, termDays)
}

// DaysToDue is the whole-day difference between dueDate and now. Positive
// means due in the future, negative means overdue by that many days, zero
// means due today. Both arguments are reduced to day granularity first, so
// the time-of-day of "now" never shifts the result.
func DaysToDue(dueDate, now time.Time) int {
	return int(dateOnly(dueDate).Sub(dateOnly(now)).Hours() / 24)
}

// Classify derives the bill status. Priority is paid > overdue > due-soon >
// pending: a paid bill is paid no matter how overdue it was.
func Classify(paymentReceived bool, daysToDue int) Status {
	switch {
	case paymentReceived:
		return StatusPaid
	case daysToDue < 0:
		return StatusOverdue
	case daysToDue <= DueSoonDays:
		return StatusDueSoon
	default:
		return StatusPending
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
