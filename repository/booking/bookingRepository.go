package bookingrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"shareit/model"
)

var dialect = goqu.Dialect("postgres")

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)

	// SetStatus writes the new status unless the booking is already
	// APPROVED; reports whether a row was updated. The condition closes
	// the read-then-write race on concurrent approvals.
	SetStatus(ctx context.Context, id int64, status model.Status) (bool, error)

	ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time, page, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time, page, size int) ([]model.Booking, error)

	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, status, item_id, booker_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowxContext(ctx, q,
		b.Start, b.End, b.Status, b.Item.ID, b.Booker.ID,
	).Scan(&b.ID)
}

func (r *repo) SetStatus(ctx context.Context, id int64, status model.Status) (bool, error) {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		AND status <> 'APPROVED'`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

// baseSelect joins item, item owner and booker; the aliases feed sqlx
// nested-struct scanning into model.Booking.
func baseSelect() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("o"), goqu.On(goqu.I("o.id").Eq(goqu.I("i.owner_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.status"),
			goqu.I("i.id").As(goqu.C("item.id")),
			goqu.I("i.name").As(goqu.C("item.name")),
			goqu.I("i.description").As(goqu.C("item.description")),
			goqu.I("i.available").As(goqu.C("item.available")),
			goqu.I("i.request_id").As(goqu.C("item.request_id")),
			goqu.I("o.id").As(goqu.C("item.owner.id")),
			goqu.I("o.name").As(goqu.C("item.owner.name")),
			goqu.I("o.email").As(goqu.C("item.owner.email")),
			goqu.I("u.id").As(goqu.C("booker.id")),
			goqu.I("u.name").As(goqu.C("booker.name")),
			goqu.I("u.email").As(goqu.C("booker.email")),
		)
}

// applyState adds the filter predicate and ordering. Every filter orders
// by start descending except CURRENT, which ascends.
func applyState(ds *goqu.SelectDataset, state model.State, now time.Time) *goqu.SelectDataset {
	switch state {
	case model.StateCurrent:
		return ds.
			Where(goqu.I("b.start_date").Lte(now), goqu.I("b.end_date").Gte(now)).
			Order(goqu.I("b.start_date").Asc())
	case model.StatePast:
		return ds.
			Where(goqu.I("b.end_date").Lt(now)).
			Order(goqu.I("b.start_date").Desc())
	case model.StateFuture:
		return ds.
			Where(goqu.I("b.start_date").Gt(now)).
			Order(goqu.I("b.start_date").Desc())
	case model.StateWaiting:
		return ds.
			Where(goqu.I("b.status").Eq(string(model.StatusWaiting))).
			Order(goqu.I("b.start_date").Desc())
	case model.StateRejected:
		return ds.
			Where(goqu.I("b.status").Eq(string(model.StatusRejected))).
			Order(goqu.I("b.start_date").Desc())
	default: // ALL
		return ds.Order(goqu.I("b.start_date").Desc())
	}
}

func (r *repo) list(ctx context.Context, ds *goqu.SelectDataset) ([]model.Booking, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var out []model.Booking
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query, args, err := baseSelect().
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time, page, size int) ([]model.Booking, error) {
	ds := applyState(baseSelect().Where(goqu.I("b.booker_id").Eq(bookerID)), state, now).
		Limit(uint(size)).
		Offset(uint(page * size))
	return r.list(ctx, ds)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time, page, size int) ([]model.Booking, error) {
	ds := applyState(baseSelect().Where(goqu.I("i.owner_id").Eq(ownerID)), state, now).
		Limit(uint(size)).
		Offset(uint(page * size))
	return r.list(ctx, ds)
}

func (r *repo) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE item_id = $1
			AND booker_id = $2
			AND status = 'APPROVED'
			AND end_date < $3
		)`
	var ok bool
	err := r.db.GetContext(ctx, &ok, q, itemID, bookerID, now)
	return ok, err
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	const q = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date < $2
		ORDER BY start_date DESC
		LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	const q = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

func (r *repo) short(ctx context.Context, q string, args ...any) (*model.BookingShort, error) {
	var s model.BookingShort
	if err := r.db.GetContext(ctx, &s, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
