package model

import (
	"strings"
	"time"

	"shareit/util/apperr"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID     int64     `db:"id" json:"id"`
	Start  time.Time `db:"start_date" json:"start"`
	End    time.Time `db:"end_date" json:"end"`
	Status Status    `db:"status" json:"status"`
	Item   Item      `db:"item" json:"item"`
	Booker User      `db:"booker" json:"booker"`
}

// BookingShort is the slice of a booking embedded in item details.
type BookingShort struct {
	ID       int64 `db:"id" json:"id"`
	BookerID int64 `db:"booker_id" json:"bookerId"`
}

// State is the query filter over a user's bookings. It is parsed once at
// the boundary; repositories only ever see the closed set below.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState accepts the six known filters case-insensitively.
func ParseState(s string) (State, error) {
	switch st := State(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", apperr.UnknownEnum("Unknown state: %s", s)
	}
}
