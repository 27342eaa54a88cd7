package booking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// POST /bookings
// @Summary      Request a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Caller user id"
// @Param        payload  body  CreateBookingReq  true  "Booking window"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  map[string]any "item unavailable or bad window"
// @Failure      404  {object}  map[string]any "item/user missing or own item"
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:id?approved=
// @Summary      Approve or reject a booking
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int   true  "Owner user id"
// @Param        id        path   int   true  "Booking id"
// @Param        approved  query  bool  true  "true approves, false rejects"
// @Success      200  {object}  model.Booking
// @Failure      400  {object}  map[string]any "already approved"
// @Failure      404  {object}  map[string]any "not the owner"
// @Router       /bookings/{id} [patch]
func (h *Controller) SetApproval(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	b, err := h.Svc.SetApproval(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Svc.GetBooking(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListForBooker(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := parseListParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bookings, err := h.Svc.ListForBooker(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListForOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := parseListParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bookings, err := h.Svc.ListForOwner(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func parseListParams(c echo.Context) (state string, from, size int, err error) {
	state = c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	from, size = 0, 10
	if v := c.QueryParam("from"); v != "" {
		from, err = strconv.Atoi(v)
		if err != nil || from < 0 {
			return "", 0, 0, errors.New("from must be >= 0")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 {
			return "", 0, 0, errors.New("size must be > 0")
		}
	}
	return state, from, size, nil
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
		h.Log.Error("booking request failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
