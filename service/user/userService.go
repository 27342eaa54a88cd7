package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

type Service interface {
	Add(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, userID int64, name, email *string) (*model.User, error)
	Delete(ctx context.Context, userID int64) error
	GetByID(ctx context.Context, userID int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)

	// CheckUser fails with NotFound when the user does not exist.
	CheckUser(ctx context.Context, userID int64) error
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r} }

func (s *service) Add(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, mapDuplicateEmail(err, email)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, userID int64, name, email *string) (*model.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	if err := s.r.Update(ctx, u); err != nil {
		return nil, mapDuplicateEmail(err, u.Email)
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	if err := s.CheckUser(ctx, userID); err != nil {
		return err
	}
	return s.r.Delete(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.r.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user with id %d not found", userID)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetAll(ctx context.Context) ([]model.User, error) {
	return s.r.GetAll(ctx)
}

func (s *service) CheckUser(ctx context.Context, userID int64) error {
	ok, err := s.r.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user with id %d not found", userID)
	}
	return nil
}

// mapDuplicateEmail turns the users_email unique violation into a
// Conflict; anything else passes through.
func mapDuplicateEmail(err error, email string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("email %s is already registered", email)
	}
	return err
}
