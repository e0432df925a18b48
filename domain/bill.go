package domain

// Bill is the persisted record. base_amount and tax_amount are written at
// creation time from the tax percentage in force then; editing the tax row
// afterwards does not touch existing bills.
type Bill struct {
	ID              int64   `db:"id" json:"id"`
	BillNo          int64   `db:"bill_no" json:"bill_no"`
	Date            string  `db:"date" json:"date"`
	BuyerID         int64   `db:"buyer_id" json:"buyer_id"`
	DalalID         int64   `db:"dalal_id" json:"dalal_id"`
	MaterialID      int64   `db:"material_id" json:"material_id"`
	DharaID         int64   `db:"dhara_id" json:"dhara_id"`
	TaxID           int64   `db:"tax_id" json:"tax_id"`
	Meter           float64 `db:"meter" json:"meter"`
	PriceRate       float64 `db:"price_rate" json:"price_rate"`
	ChalanNo        string  `db:"chalan_no" json:"chalan_no"`
	TakaCount       int64   `db:"taka_count" json:"taka_count"`
	BaseAmount      float64 `db:"base_amount" json:"base_amount"`
	TaxAmount       float64 `db:"tax_amount" json:"tax_amount"`
	PaymentReceived bool    `db:"payment_received" json:"payment_received"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
	UpdatedAt       string  `db:"updated_at" json:"updated_at"`
}

// BillView is a Bill joined with its reference rows plus the read-time
// derived fields. DueDate, DaysToDue, TotalAmount and Status are computed
// against an injected "now" and are never persisted; DaysToDue is a snapshot
// and not comparable across requests.
type BillView struct {
	Bill
	BuyerName       string  `db:"buyer_name" json:"buyer_name"`
	BuyerGST        *string `db:"buyer_gst" json:"buyer_gst,omitempty"`
	DalalName       string  `db:"dalal_name" json:"dalal_name"`
	MaterialName    string  `db:"material_name" json:"material_name"`
	MaterialHSNCode *string `db:"material_hsn_code" json:"material_hsn_code,omitempty"`
	DharaName       string  `db:"dhara_name" json:"dhara_name"`
	DharaDays       int     `db:"dhara_days" json:"dhara_days"`
	TaxName         string  `db:"tax_name" json:"tax_name"`
	TaxPercentage   float64 `db:"tax_percentage" json:"tax_percentage"`

	DueDate     string  `db:"-" json:"due_date"`
	DaysToDue   int     `db:"-" json:"days_to_due"`
	TotalAmount float64 `db:"-" json:"total_amount"`
	Status      string  `db:"-" json:"status"`
}
