package types

import "time"

// Post represents a blog entry.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// Title is the headline of the post.
	Title string `json:"titulo" db:"title"`

	// Description is the body text of the post.
	Description string `json:"descricao" db:"description"`

	// Photo is an optional image URL.
	Photo string `json:"foto,omitempty" db:"photo"`

	// Creator is a free-text label naming the author. It is not a
	// reference to a User record.
	Creator string `json:"criador" db:"creator"`

	// CreatedAt is assigned by the server when the post is created and
	// preserved across updates.
	CreatedAt time.Time `json:"dataCriacao" db:"created_at"`

	// Theme is the category the post belongs to, embedded on reads.
	Theme Theme `json:"tema" db:"-"`
}
