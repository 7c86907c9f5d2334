package models

// Shelter represents a rescue organisation in the directory.
type Shelter struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Address     string  `db:"address" json:"address"`
	City        string  `db:"city" json:"city"`
	State       string  `db:"state" json:"state"`
	Zip         string  `db:"zip" json:"zip"`
	Phone       string  `db:"phone" json:"phone"`
	Email       string  `db:"email" json:"email"`
	Website     *string `db:"website" json:"website,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`
}
