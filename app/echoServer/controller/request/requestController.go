package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	requestsvc "shareit/service/request"
	"shareit/util/apperr"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.Svc.Add(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.GetUserRequests(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) ListAll(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.Svc.GetAllRequests(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Svc.GetRequest(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
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
		h.Log.Error("request board call failed", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
