package models

import "time"

type Post struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Created  time.Time `json:"created"`
	AuthorID int       `json:"author_id"`

	// Username is the author's username, filled in by queries that join users.
	Username string `json:"username,omitempty"`
}
