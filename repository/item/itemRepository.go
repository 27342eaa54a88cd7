package itemrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shareit/model"
)

// itemColumns aliases the owner join so sqlx can scan into the nested
// model.Item.Owner struct.
const itemColumns = `
	i.id, i.name, i.description, i.available, i.request_id,
	o.id AS "owner.id", o.name AS "owner.name", o.email AS "owner.email"`

type Repo interface {
	Create(ctx context.Context, i *model.Item) error
	Update(ctx context.Context, i *model.Item) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, page, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, page, size int) ([]model.Item, error)
	ListByRequestID(ctx context.Context, requestID int64) ([]model.Item, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, i *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowxContext(ctx, q,
		i.Name, i.Description, i.Available, i.Owner.ID, i.RequestID,
	).Scan(&i.ID)
}

func (r *repo) Update(ctx context.Context, i *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, i.ID, i.Name, i.Description, i.Available)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users o ON o.id = i.owner_id
		WHERE i.id = $1`
	var i model.Item
	if err := r.db.GetContext(ctx, &i, q, id); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, page, size int) ([]model.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users o ON o.id = i.owner_id
		WHERE i.owner_id = $1
		ORDER BY i.id
		LIMIT $2 OFFSET $3`
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, ownerID, size, page*size); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Search(ctx context.Context, text string, page, size int) ([]model.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users o ON o.id = i.owner_id
		WHERE i.available
		  AND (i.name ILIKE '%' || $1 || '%' OR i.description ILIKE '%' || $1 || '%')
		ORDER BY i.id
		LIMIT $2 OFFSET $3`
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, text, size, page*size); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListByRequestID(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users o ON o.id = i.owner_id
		WHERE i.request_id = $1
		ORDER BY i.id`
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, requestID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`
	var ok bool
	err := r.db.GetContext(ctx, &ok, q, id)
	return ok, err
}
