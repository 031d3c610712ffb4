// Package model contains the domain records shared by the store and the HTTP layer.
package model

// Post is a row of the posts table.
type Post struct {
	ID    int64  `db:"id"    json:"id"`
	Title string `db:"title" json:"title"`
	Body  string `db:"body"  json:"body"`
}
