package domain

// Dhara is a named payment-term policy: the credit period in days before a
// bill falls due.
type Dhara struct {
	ID        int64  `db:"id" json:"id"`
	DharaName string `db:"dhara_name" json:"dhara_name"`
	Days      int    `db:"days" json:"days"`
}
