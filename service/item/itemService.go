package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	usersvc "shareit/service/user"
	"shareit/util/apperr"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, item *model.Item, requestID *int64) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, name, description *string, available *bool) (*model.Item, error)
	GetByID(ctx context.Context, itemID int64) (*model.Item, error)
	GetOwnerItems(ctx context.Context, userID int64, from, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error

	// AddComment allows a comment only from a user with a finished
	// approved booking of the item.
	AddComment(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error)

	// AttachBookingAndComments builds the detail view: last/next
	// approved bookings for the owner, comments for everyone.
	AttachBookingAndComments(ctx context.Context, item *model.Item, viewerID int64) (*model.ItemDetail, error)

	GetByRequestID(ctx context.Context, requestID int64) ([]model.Item, error)
	CheckItem(ctx context.Context, itemID int64) error
}

type service struct {
	items    itemrepo.Repo
	bookings bookingrepo.Repo
	comments commentrepo.Repo
	requests requestrepo.Repo
	users    usersvc.Service
}

func New(
	items itemrepo.Repo,
	bookings bookingrepo.Repo,
	comments commentrepo.Repo,
	requests requestrepo.Repo,
	users usersvc.Service,
) Service {
	return &service{
		items:    items,
		bookings: bookings,
		comments: comments,
		requests: requests,
		users:    users,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, item *model.Item, requestID *int64) (*model.Item, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	item.Owner = *owner
	if requestID != nil {
		if _, err := s.requests.GetByID(ctx, *requestID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.NotFound("request with id %d not found", *requestID)
			}
			return nil, err
		}
		item.RequestID = requestID
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	slog.Info("item created", "item_id", item.ID, "owner_id", ownerID)
	return item, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, name, description *string, available *bool) (*model.Item, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Owner.ID != userID {
		return nil, apperr.NotFound("user %d is not the owner of item %d", userID, itemID)
	}
	if name != nil {
		item.Name = *name
	}
	if description != nil {
		item.Description = *description
	}
	if available != nil {
		item.Available = *available
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	slog.Info("item updated", "item_id", itemID)
	return item, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*model.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item with id %d not found", itemID)
		}
		return nil, err
	}
	return item, nil
}

func (s *service) GetOwnerItems(ctx context.Context, userID int64, from, size int) ([]model.Item, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.items.ListByOwner(ctx, userID, from/size, size)
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if text == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text, from/size, size)
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	if err := s.users.CheckUser(ctx, ownerID); err != nil {
		return err
	}
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Owner.ID != ownerID {
		return apperr.NotFound("user %d has no item with id %d", ownerID, itemID)
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	slog.Info("item deleted", "item_id", itemID, "owner_id", ownerID)
	return nil
}

func (s *service) AddComment(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.CheckItem(ctx, itemID); err != nil {
		return nil, err
	}
	now := time.Now()
	ok, err := s.bookings.HasFinishedBooking(ctx, itemID, userID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("no finished booking of item %d found for user %d", itemID, userID)
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		Text:       text,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, comment, itemID, userID); err != nil {
		return nil, err
	}
	slog.Info("comment added", "item_id", itemID, "author_id", userID)
	return comment, nil
}

func (s *service) AttachBookingAndComments(ctx context.Context, item *model.Item, viewerID int64) (*model.ItemDetail, error) {
	now := time.Now()
	detail := &model.ItemDetail{Item: *item, Comments: []model.Comment{}}

	if item.Owner.ID == viewerID {
		last, err := s.bookings.LastForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		detail.LastBooking = last
		detail.NextBooking = next
	}

	comments, err := s.comments.ListByItemID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments != nil {
		detail.Comments = comments
	}
	return detail, nil
}

func (s *service) GetByRequestID(ctx context.Context, requestID int64) ([]model.Item, error) {
	items, err := s.items.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []model.Item{}, nil
	}
	return items, nil
}

func (s *service) CheckItem(ctx context.Context, itemID int64) error {
	ok, err := s.items.ExistsByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("item with id %d not found", itemID)
	}
	return nil
}
