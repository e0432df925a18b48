package billing

import (
	"fmt"
	"time"

	"texbill/m/domain"
)

// BillInput is the validated form input for creating or replacing a bill.
// The form layer guarantees the numeric preconditions (meter > 0,
// price_rate > 0, taka_count > 0) before this package sees them.
type BillInput struct {
	BillNo          int64
	Date            string
	Meter           float64
	PriceRate       float64
	ChalanNo        string
	TakaCount       int64
	PaymentReceived bool
}

// References carries the five reference rows a bill points at. A nil field
// means the lookup failed and BuildBill refuses to compose the aggregate.
type References struct {
	Buyer    *domain.Buyer
	Dalal    *domain.Dalal
	Material *domain.Material
	Dhara    *domain.Dhara
	Tax      *domain.Tax
}

// ReferenceNotFoundError reports which required reference failed to
// resolve; the HTTP layer surfaces it as a field-level validation error.
type ReferenceNotFoundError struct {
	Kind string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s reference not found", e.Kind)
}

// BuildBill composes the fully denormalized bill view: it validates
// referential completeness, runs the amount calculator with the tax
// percentage in force now (the value that gets stored), and derives the
// aging fields against the injected now.
func BuildBill(in BillInput, refs References, now time.Time) (domain.BillView, error) {
	var v domain.BillView

	switch {
	case refs.Buyer == nil:
		return v, &ReferenceNotFoundError{Kind: "buyer"}
	case refs.Dalal == nil:
		return v, &ReferenceNotFoundError{Kind: "dalal"}
	case refs.Material == nil:
		return v, &ReferenceNotFoundError{Kind: "material"}
	case refs.Dhara == nil:
		return v, &ReferenceNotFoundError{Kind: "dhara"}
	case refs.Tax == nil:
		return v, &ReferenceNotFoundError{Kind: "tax"}
	}

	if _, err := ParseDate(in.Date); err != nil {
		return v, fmt.Errorf("invalid bill date %q: %w", in.Date, err)
	}

	amounts := ComputeAmounts(in.Meter, in.PriceRate, refs.Tax.Percentage)

	v.Bill = domain.Bill{
		BillNo:          in.BillNo,
		Date:            in.Date,
		BuyerID:         refs.Buyer.ID,
		DalalID:         refs.Dalal.ID,
		MaterialID:      refs.Material.ID,
		DharaID:         refs.Dhara.ID,
		TaxID:           refs.Tax.ID,
		Meter:           in.Meter,
		PriceRate:       in.PriceRate,
		ChalanNo:        in.ChalanNo,
		TakaCount:       in.TakaCount,
		BaseAmount:      amounts.Base,
		TaxAmount:       amounts.Tax,
		PaymentReceived: in.PaymentReceived,
	}
	v.BuyerName = refs.Buyer.Name
	v.BuyerGST = refs.Buyer.GSTNumber
	v.DalalName = refs.Dalal.Name
	v.MaterialName = refs.Material.Name
	v.MaterialHSNCode = refs.Material.HSNCode
	v.DharaName = refs.Dhara.DharaName
	v.DharaDays = refs.Dhara.Days
	v.TaxName = refs.Tax.Name
	v.TaxPercentage = refs.Tax.Percentage

	Derive(&v, now)
	return v, nil
}

// Derive fills the read-time fields of a view: due date, days to due,
// total and status. It is called on every read because days_to_due is only
// ever a snapshot relative to the given now.
func Derive(v *domain.BillView, now time.Time) {
	v.TotalAmount = v.BaseAmount + v.TaxAmount
	billDate, err := ParseDate(v.Date)
	if err != nil {
		// A malformed stored date never classifies as overdue; it shows
		// up as pending with no due date.
		v.DueDate = ""
		v.DaysToDue = 0
		v.Status = string(Classify(v.PaymentReceived, DueSoonDays+1))
		return
	}
	due := ResolveDueDate(billDate, v.DharaDays)
	v.DueDate = FormatDate(due)
	v.DaysToDue = DaysToDue(due, now)
	v.Status = string(Classify(v.PaymentReceived, v.DaysToDue))
}
