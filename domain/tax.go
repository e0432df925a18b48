package domain

type Tax struct {
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Percentage float64 `db:"percentage" json:"percentage"`
}
