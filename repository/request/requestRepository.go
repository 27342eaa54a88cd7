package requestrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, r *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, requesterID int64, page, size int) ([]model.ItemRequest, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowxContext(ctx, q, req.Description, req.RequesterID, req.Created).Scan(&req.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE id = $1`
	var req model.ItemRequest
	if err := r.db.GetContext(ctx, &req, q, id); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created`
	var out []model.ItemRequest
	if err := r.db.SelectContext(ctx, &out, q, requesterID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListOthers(ctx context.Context, requesterID int64, page, size int) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created
		LIMIT $2 OFFSET $3`
	var out []model.ItemRequest
	if err := r.db.SelectContext(ctx, &out, q, requesterID, size, page*size); err != nil {
		return nil, err
	}
	return out, nil
}
