package item

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// POST /items
// @Summary      List an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Caller user id"
// @Param        payload  body  CreateItemReq  true  "Item payload"
// @Success      201  {object}  model.Item
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	item := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	}
	out, err := h.Svc.Create(c.Request().Context(), uid, item, req.RequestID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	out, err := h.Svc.Update(c.Request().Context(), uid, id, req.Name, req.Description, req.Available)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/:id
//
// The detail view depends on who is asking: owners additionally see the
// last and next approved bookings.
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	item, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	detail, err := h.Svc.AttachBookingAndComments(c.Request().Context(), item, uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// GET /items
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Svc.GetOwnerItems(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]model.ItemDetail, 0, len(items))
	for i := range items {
		detail, err := h.Svc.AttachBookingAndComments(c.Request().Context(), &items[i], uid)
		if err != nil {
			return h.fail(c, err)
		}
		out = append(out, *detail)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	from, size, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /items/:id/comment
// @Summary      Comment on an item
// @Description  Allowed only after a finished approved booking of the item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Caller user id"
// @Param        id       path  int               true  "Item id"
// @Param        payload  body  CreateCommentReq  true  "Comment payload"
// @Success      201  {object}  model.Comment
// @Failure      400  {object}  map[string]any "no eligible booking"
// @Failure      404  {object}  map[string]any
// @Router       /items/{id}/comment [post]
func (h *Controller) AddComment(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	comment, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}

func parsePaging(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if v := c.QueryParam("from"); v != "" {
		from, err = strconv.Atoi(v)
		if err != nil || from < 0 {
			return 0, 0, errors.New("from must be >= 0")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 {
			return 0, 0, errors.New("size must be > 0")
		}
	}
	return from, size, nil
}

func (h *Controller) fail(c echo.Context, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case apperr.KindValidation, apperr.KindUnknownEnum:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		h.Log.Error("item request failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
