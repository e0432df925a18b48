package domain

type Buyer struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Address       *string `db:"address" json:"address,omitempty"`
	ContactNumber string  `db:"contact_number" json:"contact_number"`
	GSTNumber     *string `db:"gst_number" json:"gst_number,omitempty"`
}
