package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemsvc "shareit/service/item"
	usersvc "shareit/service/user"
	"shareit/util/apperr"
)

type Service interface {
	// Create registers a WAITING booking of an available item by a user
	// who is not the item's owner, for a window with start strictly
	// before end.
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error)

	// SetApproval moves a booking to APPROVED or REJECTED. Only the
	// item's owner may decide, and an APPROVED booking is final.
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error)

	// GetBooking is visible to the booker and the item owner only;
	// everyone else gets NotFound.
	GetBooking(ctx context.Context, userID, bookingID int64) (*model.Booking, error)

	ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
	ListForOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
}

type service struct {
	bookings bookingrepo.Repo
	users    usersvc.Service
	items    itemsvc.Service
}

func New(bookings bookingrepo.Repo, users usersvc.Service, items itemsvc.Service) Service {
	return &service{bookings: bookings, users: users, items: items}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, apperr.Validation("item %s is not available for booking", item.Name)
	}
	// Booking your own item is reported as NotFound, same as the other
	// visibility failures.
	if booker.ID == item.Owner.ID {
		return nil, apperr.NotFound("cannot book your own item")
	}
	if !start.Before(end) {
		return nil, apperr.Validation("booking end must be strictly after start")
	}

	b := &model.Booking{
		Start:  start,
		End:    end,
		Status: model.StatusWaiting,
		Item:   *item,
		Booker: *booker,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	slog.Info("booking created", "booking_id", b.ID, "item_id", itemID, "booker_id", bookerID)
	return b, nil
}

func (s *service) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error) {
	if err := s.users.CheckUser(ctx, ownerID); err != nil {
		return nil, err
	}
	b, err := s.getByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Item.Owner.ID != ownerID {
		return nil, apperr.NotFound("user %d is not the owner of the booked item", ownerID)
	}
	if b.Status == model.StatusApproved {
		return nil, apperr.Validation("booking is already approved")
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}
	// Conditional write: a concurrent approval that won the race leaves
	// nothing for us to update.
	ok, err := s.bookings.SetStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("booking is already approved")
	}
	b.Status = status
	slog.Info("booking decided", "booking_id", bookingID, "status", status)
	return b, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.getByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Booker.ID == userID || b.Item.Owner.ID == userID {
		return b, nil
	}
	return nil, apperr.NotFound("only the booker or the item owner can view booking %d", bookingID)
}

func (s *service) ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	st, err := model.ParseState(state)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, st, time.Now(), from/size, size)
}

func (s *service) ListForOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.items.GetOwnerItems(ctx, userID, 0, size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.Validation("no items found for user %d", userID)
	}
	st, err := model.ParseState(state)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, userID, st, time.Now(), from/size, size)
}

func (s *service) getByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking with id %d not found", bookingID)
		}
		return nil, err
	}
	return b, nil
}
