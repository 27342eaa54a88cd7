package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shareit/model"
	requestrepo "shareit/repository/request"
	itemsvc "shareit/service/item"
	usersvc "shareit/service/user"
	"shareit/util/apperr"
)

type Service interface {
	Add(ctx context.Context, userID int64, description string) (*model.ItemRequest, error)
	GetUserRequests(ctx context.Context, userID int64) ([]model.ItemRequestDetail, error)
	GetAllRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestDetail, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*model.ItemRequestDetail, error)
}

type service struct {
	requests requestrepo.Repo
	users    usersvc.Service
	items    itemsvc.Service
}

func New(requests requestrepo.Repo, users usersvc.Service, items itemsvc.Service) Service {
	return &service{requests: requests, users: users, items: items}
}

func (s *service) Add(ctx context.Context, userID int64, description string) (*model.ItemRequest, error) {
	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	req := &model.ItemRequest{
		Description: description,
		RequesterID: requester.ID,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetUserRequests(ctx context.Context, userID int64) ([]model.ItemRequestDetail, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *service) GetAllRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestDetail, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOthers(ctx, userID, from/size, size)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *service) GetRequest(ctx context.Context, userID, requestID int64) (*model.ItemRequestDetail, error) {
	if err := s.users.CheckUser(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("request with id %d not found", requestID)
		}
		return nil, err
	}
	details, err := s.withItems(ctx, []model.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// withItems attaches the derived fulfilling-item lists; a request with
// no items gets an empty list, never nil.
func (s *service) withItems(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequestDetail, error) {
	out := make([]model.ItemRequestDetail, 0, len(requests))
	for _, req := range requests {
		items, err := s.items.GetByRequestID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ItemRequestDetail{ItemRequest: req, Items: items})
	}
	return out, nil
}
