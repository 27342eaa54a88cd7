package model

type Item struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Available   bool   `db:"available" json:"available"`
	Owner       User   `db:"owner" json:"-"`
	RequestID   *int64 `db:"request_id" json:"requestId,omitempty"`
}

// ItemDetail is the owner-aware view of an item: last/next approved
// bookings are attached only for the owner, comments for everyone.
type ItemDetail struct {
	Item
	LastBooking *BookingShort `json:"lastBooking,omitempty"`
	NextBooking *BookingShort `json:"nextBooking,omitempty"`
	Comments    []Comment     `json:"comments"`
}
