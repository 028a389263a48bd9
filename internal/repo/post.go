package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/bloglet/internal/models"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ==========================
// List Posts (newest first)
// ==========================
func (r *PostRepo) ListWithAuthors(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID, &p.Username); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ==========================
// Create Post
// ==========================
func (r *PostRepo) Create(ctx context.Context, title, body string, authorID int) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO posts (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, body, created, author_id
	`, title, body, authorID).Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Created,
		&post.AuthorID,
	)
	return post, err
}

// ==========================
// Get Post By ID (with author)
// ==========================
func (r *PostRepo) GetWithAuthor(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`, id).Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Created,
		&post.AuthorID,
		&post.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

// ==========================
// Update Post (title/body only)
// ==========================
func (r *PostRepo) Update(ctx context.Context, id int, title, body string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE posts
		SET title = $1, body = $2
		WHERE id = $3
	`, title, body, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ==========================
// Delete Post
// ==========================
func (r *PostRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
