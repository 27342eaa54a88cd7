package model

import "time"

type Comment struct {
	ID         int64     `db:"id" json:"id"`
	Text       string    `db:"text" json:"text"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Created    time.Time `db:"created" json:"created"`
}
