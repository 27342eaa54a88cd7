package commentrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment, itemID, authorID int64) error
	ListByItemID(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Comment, itemID, authorID int64) error {
	const q = `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.QueryRowxContext(ctx, q, c.Text, itemID, authorID, c.Created).Scan(&c.ID)
}

func (r *repo) ListByItemID(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `
		SELECT c.id, c.text, u.name AS author_name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created`
	var out []model.Comment
	if err := r.db.SelectContext(ctx, &out, q, itemID); err != nil {
		return nil, err
	}
	return out, nil
}
