package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/blogpessoal/blogapi/types"
)

const selectPostColumns = `
		SELECT p.id, p.title, p.description, p.photo, p.creator, p.created_at, t.id, t.description
		FROM posts p
		JOIN themes t ON t.id = p.theme_id`

// PostRepository handles persistence for posts.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) List(ctx context.Context) ([]types.Post, error) {
	const query = selectPostColumns + `
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (types.Post, error) {
	const query = selectPostColumns + `
		WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

// Create inserts a post and returns it with the generated id, creation date
// and the referenced theme resolved.
func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	post.CreatedAt = time.Now().UTC()

	const query = `
		WITH inserted AS (
			INSERT INTO posts (title, description, photo, creator, created_at, theme_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, theme_id
		)
		SELECT inserted.id, t.description
		FROM inserted
		JOIN themes t ON t.id = inserted.theme_id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Description,
		post.Photo,
		post.Creator,
		post.CreatedAt,
		post.Theme.ID,
	).Scan(&post.ID, &post.Theme.Description)
	if err != nil {
		if isPQError(err, pqForeignKeyViolation) {
			return types.Post{}, ErrThemeNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

// Update replaces every client-owned field of the post. The creation date is
// kept from the stored row.
func (r *PostRepository) Update(ctx context.Context, post types.Post) (types.Post, error) {
	const query = `
		WITH updated AS (
			UPDATE posts
			SET title = $1,
				description = $2,
				photo = $3,
				creator = $4,
				theme_id = $5
			WHERE id = $6
			RETURNING created_at, theme_id
		)
		SELECT updated.created_at, t.description
		FROM updated
		JOIN themes t ON t.id = updated.theme_id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Description,
		post.Photo,
		post.Creator,
		post.Theme.ID,
		post.ID,
	).Scan(&post.CreatedAt, &post.Theme.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		if isPQError(err, pqForeignKeyViolation) {
			return types.Post{}, ErrThemeNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.Photo,
		&post.Creator,
		&post.CreatedAt,
		&post.Theme.ID,
		&post.Theme.Description,
	)
	return post, err
}
