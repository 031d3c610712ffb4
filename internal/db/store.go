// Package db owns the database handle and the statements run against the
// posts table.
package db

import (
	"context"
	"fmt"

	"posts-api/internal/model"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	dropPostsSQL   = `DROP TABLE IF EXISTS posts`
	createPostsSQL = `CREATE TABLE posts (
  id INT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  title VARCHAR(255) NOT NULL,
  body VARCHAR(255) NOT NULL
)`
	seedPostsSQL = `INSERT INTO posts (title, body) VALUES ('title1', 'body1'), ('title2', 'body2')`
	listPostsSQL = `SELECT * FROM posts ORDER BY id`
)

// DBTX is the part of *pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Reset drops and recreates the posts table, then inserts the two seed rows.
// The statements run in order outside a transaction and the first failure
// stops the sequence.
func (s *Store) Reset(ctx context.Context) error {
	steps := []struct {
		name string
		sql  string
	}{
		{"drop posts table", dropPostsSQL},
		{"create posts table", createPostsSQL},
		{"seed posts", seedPostsSQL},
	}
	for _, step := range steps {
		if _, err := s.db.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("db: %s: %w", step.name, err)
		}
	}
	return nil
}

// ListPosts returns every row of the posts table.
func (s *Store) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := pgxscan.Select(ctx, s.db, &posts, listPostsSQL); err != nil {
		return nil, fmt.Errorf("db: list posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}
