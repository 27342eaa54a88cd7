package echoServer

import (
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// User CRUD carries no caller header in the original system.
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := e.Group("/items", CallerID())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ListOwn)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.DELETE("/:id", c.Item.Delete)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", CallerID())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListForBooker)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.SetApproval)

	requests := e.Group("/requests", CallerID())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListOwn)
	requests.GET("/all", c.Request.ListAll)
	requests.GET("/:id", c.Request.Get)
}
