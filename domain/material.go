package domain

type Material struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	ExtraDetail *string `db:"extra_detail" json:"extra_detail,omitempty"`
	HSNCode     *string `db:"hsn_code" json:"hsn_code,omitempty"`
}
