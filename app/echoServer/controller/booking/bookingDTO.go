package booking

import "time"

// CreateBookingReq requests a time window on an item. Timestamps are
// ISO-8601; the gateway already rejects windows in the past, the core
// only requires start < end.
// swagger:model CreateBookingReq
type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
