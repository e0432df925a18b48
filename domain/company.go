package domain

// CompanyProfile is the single-row company/bank block printed on invoices.
type CompanyProfile struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Tagline         *string `db:"tagline" json:"tagline,omitempty"`
	Address         string  `db:"address" json:"address"`
	Contact         string  `db:"contact" json:"contact"`
	GST             string  `db:"gst" json:"gst"`
	PAN             string  `db:"pan" json:"pan"`
	BusinessType    string  `db:"business_type" json:"business_type"`
	BankName        string  `db:"bank_name" json:"bank_name"`
	AccountNo       string  `db:"account_no" json:"account_no"`
	IFSC            string  `db:"ifsc" json:"ifsc"`
	Branch          string  `db:"branch" json:"branch"`
	TermsConditions *string `db:"terms_conditions" json:"terms_conditions,omitempty"`
}
