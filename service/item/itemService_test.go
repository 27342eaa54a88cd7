package itemsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
)

type itemRepoMock struct {
	createFn    func(ctx context.Context, i *model.Item) error
	updateFn    func(ctx context.Context, i *model.Item) error
	deleteFn    func(ctx context.Context, id int64) error
	getFn       func(ctx context.Context, id int64) (*model.Item, error)
	listOwnerFn func(ctx context.Context, ownerID int64, page, size int) ([]model.Item, error)
	searchFn    func(ctx context.Context, text string, page, size int) ([]model.Item, error)
	byRequestFn func(ctx context.Context, requestID int64) ([]model.Item, error)
	existsFn    func(ctx context.Context, id int64) (bool, error)
}

func (m *itemRepoMock) Create(ctx context.Context, i *model.Item) error { return m.createFn(ctx, i) }
func (m *itemRepoMock) Update(ctx context.Context, i *model.Item) error { return m.updateFn(ctx, i) }
func (m *itemRepoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *itemRepoMock) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.getFn(ctx, id)
}
func (m *itemRepoMock) ListByOwner(ctx context.Context, ownerID int64, page, size int) ([]model.Item, error) {
	return m.listOwnerFn(ctx, ownerID, page, size)
}
func (m *itemRepoMock) Search(ctx context.Context, text string, page, size int) ([]model.Item, error) {
	return m.searchFn(ctx, text, page, size)
}
func (m *itemRepoMock) ListByRequestID(ctx context.Context, requestID int64) ([]model.Item, error) {
	return m.byRequestFn(ctx, requestID)
}
func (m *itemRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type bookingRepoMock struct {
	hasFinishedFn func(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	lastFn        func(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	nextFn        func(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
}

func (m *bookingRepoMock) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	return m.hasFinishedFn(ctx, itemID, bookerID, now)
}
func (m *bookingRepoMock) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	return m.lastFn(ctx, itemID, now)
}
func (m *bookingRepoMock) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	return m.nextFn(ctx, itemID, now)
}
func (m *bookingRepoMock) Create(context.Context, *model.Booking) error {
	panic("unexpected Create call")
}
func (m *bookingRepoMock) GetByID(context.Context, int64) (*model.Booking, error) {
	panic("unexpected GetByID call")
}
func (m *bookingRepoMock) SetStatus(context.Context, int64, model.Status) (bool, error) {
	panic("unexpected SetStatus call")
}
func (m *bookingRepoMock) ListByBooker(context.Context, int64, model.State, time.Time, int, int) ([]model.Booking, error) {
	panic("unexpected ListByBooker call")
}
func (m *bookingRepoMock) ListByOwner(context.Context, int64, model.State, time.Time, int, int) ([]model.Booking, error) {
	panic("unexpected ListByOwner call")
}

type commentRepoMock struct {
	createFn func(ctx context.Context, c *model.Comment, itemID, authorID int64) error
	listFn   func(ctx context.Context, itemID int64) ([]model.Comment, error)
}

func (m *commentRepoMock) Create(ctx context.Context, c *model.Comment, itemID, authorID int64) error {
	return m.createFn(ctx, c, itemID, authorID)
}
func (m *commentRepoMock) ListByItemID(ctx context.Context, itemID int64) ([]model.Comment, error) {
	return m.listFn(ctx, itemID)
}

type requestRepoMock struct {
	getFn func(ctx context.Context, id int64) (*model.ItemRequest, error)
}

func (m *requestRepoMock) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.getFn(ctx, id)
}
func (m *requestRepoMock) Create(context.Context, *model.ItemRequest) error {
	panic("unexpected Create call")
}
func (m *requestRepoMock) ListByRequester(context.Context, int64) ([]model.ItemRequest, error) {
	panic("unexpected ListByRequester call")
}
func (m *requestRepoMock) ListOthers(context.Context, int64, int, int) ([]model.ItemRequest, error) {
	panic("unexpected ListOthers call")
}

type userSvcMock struct {
	users map[int64]model.User
}

func (m *userSvcMock) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, apperr.NotFound("user with id %d not found", id)
}
func (m *userSvcMock) CheckUser(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("user with id %d not found", id)
	}
	return nil
}
func (m *userSvcMock) Add(context.Context, string, string) (*model.User, error) {
	panic("unexpected Add call")
}
func (m *userSvcMock) Update(context.Context, int64, *string, *string) (*model.User, error) {
	panic("unexpected Update call")
}
func (m *userSvcMock) Delete(context.Context, int64) error     { panic("unexpected Delete call") }
func (m *userSvcMock) GetAll(context.Context) ([]model.User, error) {
	panic("unexpected GetAll call")
}

var (
	owner  = model.User{ID: 1, Name: "owner", Email: "owner@mail.com"}
	renter = model.User{ID: 2, Name: "renter", Email: "renter@mail.com"}
)

func users() *userSvcMock {
	return &userSvcMock{users: map[int64]model.User{owner.ID: owner, renter.ID: renter}}
}

func drill() *model.Item {
	return &model.Item{ID: 10, Name: "drill", Description: "power drill", Available: true, Owner: owner}
}

func newService(items *itemRepoMock, bookings *bookingRepoMock, comments *commentRepoMock, requests *requestRepoMock) itemsvc.Service {
	if items == nil {
		items = &itemRepoMock{}
	}
	if bookings == nil {
		bookings = &bookingRepoMock{}
	}
	if comments == nil {
		comments = &commentRepoMock{}
	}
	if requests == nil {
		requests = &requestRepoMock{}
	}
	return itemsvc.New(items, bookings, comments, requests, users())
}

func TestCreate_SetsOwnerAndRequest(t *testing.T) {
	var saved *model.Item
	items := &itemRepoMock{
		createFn: func(_ context.Context, i *model.Item) error {
			i.ID = 10
			saved = i
			return nil
		},
	}
	requests := &requestRepoMock{
		getFn: func(_ context.Context, id int64) (*model.ItemRequest, error) {
			return &model.ItemRequest{ID: id}, nil
		},
	}
	s := newService(items, nil, nil, requests)

	reqID := int64(5)
	out, err := s.Create(context.Background(), owner.ID, &model.Item{Name: "drill", Description: "d", Available: true}, &reqID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, owner.ID, out.Owner.ID)
	require.NotNil(t, out.RequestID)
	assert.Equal(t, reqID, *out.RequestID)
}

func TestCreate_UnknownRequest(t *testing.T) {
	requests := &requestRepoMock{
		getFn: func(context.Context, int64) (*model.ItemRequest, error) { return nil, sql.ErrNoRows },
	}
	s := newService(nil, nil, nil, requests)

	reqID := int64(5)
	_, err := s.Create(context.Background(), owner.ID, &model.Item{Name: "n", Description: "d"}, &reqID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_OnlyOwner(t *testing.T) {
	items := &itemRepoMock{
		getFn: func(context.Context, int64) (*model.Item, error) { return drill(), nil },
	}
	s := newService(items, nil, nil, nil)

	name := "hammer"
	_, err := s.Update(context.Background(), renter.ID, 10, &name, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_PartialPreservesAbsentFields(t *testing.T) {
	var saved *model.Item
	items := &itemRepoMock{
		getFn: func(context.Context, int64) (*model.Item, error) { return drill(), nil },
		updateFn: func(_ context.Context, i *model.Item) error {
			saved = i
			return nil
		},
	}
	s := newService(items, nil, nil, nil)

	available := false
	out, err := s.Update(context.Background(), owner.ID, 10, nil, nil, &available)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "drill", out.Name)
	assert.Equal(t, "power drill", out.Description)
	assert.False(t, out.Available)
}

func TestSearch_BlankTextReturnsEmpty(t *testing.T) {
	s := newService(&itemRepoMock{
		searchFn: func(context.Context, string, int, int) ([]model.Item, error) {
			t.Fatal("repository must not be queried for blank text")
			return nil, nil
		},
	}, nil, nil, nil)

	out, err := s.Search(context.Background(), "", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestGetOwnerItems_PageDerivation(t *testing.T) {
	var gotPage int
	items := &itemRepoMock{
		listOwnerFn: func(_ context.Context, _ int64, page, _ int) ([]model.Item, error) {
			gotPage = page
			return nil, nil
		},
	}
	s := newService(items, nil, nil, nil)

	_, err := s.GetOwnerItems(context.Background(), owner.ID, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, gotPage)

	_, err = s.GetOwnerItems(context.Background(), owner.ID, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, gotPage)
}

func TestAddComment_RequiresFinishedBooking(t *testing.T) {
	items := &itemRepoMock{
		existsFn: func(context.Context, int64) (bool, error) { return true, nil },
	}
	bookings := &bookingRepoMock{
		hasFinishedFn: func(context.Context, int64, int64, time.Time) (bool, error) { return false, nil },
	}
	s := newService(items, bookings, nil, nil)

	_, err := s.AddComment(context.Background(), renter.ID, 10, "great drill")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAddComment_Success(t *testing.T) {
	items := &itemRepoMock{
		existsFn: func(context.Context, int64) (bool, error) { return true, nil },
	}
	bookings := &bookingRepoMock{
		hasFinishedFn: func(context.Context, int64, int64, time.Time) (bool, error) { return true, nil },
	}
	var gotItemID, gotAuthorID int64
	comments := &commentRepoMock{
		createFn: func(_ context.Context, c *model.Comment, itemID, authorID int64) error {
			c.ID = 3
			gotItemID, gotAuthorID = itemID, authorID
			return nil
		},
	}
	s := newService(items, bookings, comments, nil)

	out, err := s.AddComment(context.Background(), renter.ID, 10, "great drill")
	require.NoError(t, err)
	assert.Equal(t, int64(10), gotItemID)
	assert.Equal(t, renter.ID, gotAuthorID)
	assert.Equal(t, renter.Name, out.AuthorName)
	assert.False(t, out.Created.IsZero())
}

func TestAddComment_UnknownItem(t *testing.T) {
	items := &itemRepoMock{
		existsFn: func(context.Context, int64) (bool, error) { return false, nil },
	}
	s := newService(items, nil, nil, nil)

	_, err := s.AddComment(context.Background(), renter.ID, 99, "text")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAttachBookingAndComments_OwnerView(t *testing.T) {
	bookings := &bookingRepoMock{
		lastFn: func(context.Context, int64, time.Time) (*model.BookingShort, error) {
			return &model.BookingShort{ID: 1, BookerID: renter.ID}, nil
		},
		nextFn: func(context.Context, int64, time.Time) (*model.BookingShort, error) {
			return &model.BookingShort{ID: 2, BookerID: renter.ID}, nil
		},
	}
	comments := &commentRepoMock{
		listFn: func(context.Context, int64) ([]model.Comment, error) { return nil, nil },
	}
	s := newService(nil, bookings, comments, nil)

	detail, err := s.AttachBookingAndComments(context.Background(), drill(), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.LastBooking)
	require.NotNil(t, detail.NextBooking)
	assert.Equal(t, int64(1), detail.LastBooking.ID)
	assert.Equal(t, int64(2), detail.NextBooking.ID)
	// no comments still serializes as an empty list
	assert.NotNil(t, detail.Comments)
	assert.Empty(t, detail.Comments)
}

func TestAttachBookingAndComments_NonOwnerSeesNoBookings(t *testing.T) {
	comments := &commentRepoMock{
		listFn: func(context.Context, int64) ([]model.Comment, error) {
			return []model.Comment{{ID: 1, Text: "nice", AuthorName: renter.Name}}, nil
		},
	}
	// booking repo must not be touched for a non-owner
	s := newService(nil, &bookingRepoMock{}, comments, nil)

	detail, err := s.AttachBookingAndComments(context.Background(), drill(), renter.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.LastBooking)
	assert.Nil(t, detail.NextBooking)
	require.Len(t, detail.Comments, 1)
}

func TestGetByRequestID_EmptyNotNil(t *testing.T) {
	items := &itemRepoMock{
		byRequestFn: func(context.Context, int64) ([]model.Item, error) { return nil, nil },
	}
	s := newService(items, nil, nil, nil)

	out, err := s.GetByRequestID(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDelete_OnlyOwner(t *testing.T) {
	items := &itemRepoMock{
		getFn: func(context.Context, int64) (*model.Item, error) { return drill(), nil },
	}
	s := newService(items, nil, nil, nil)

	err := s.Delete(context.Background(), renter.ID, 10)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
