package types

// Theme is a category that posts can reference.
type Theme struct {
	// ID is the unique identifier of the theme.
	ID int `json:"id" db:"id"`

	// Description is the theme's label, e.g. "TEMA 1".
	Description string `json:"descricao" db:"description"`
}
