package domain

// Dalal is the broker/intermediary party on a bill, distinct from the buyer.
type Dalal struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	ContactNumber string  `db:"contact_number" json:"contact_number"`
	Address       *string `db:"address" json:"address,omitempty"`
}
