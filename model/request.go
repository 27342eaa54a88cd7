package model

import "time"

type ItemRequest struct {
	ID          int64     `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	RequesterID int64     `db:"requester_id" json:"-"`
	Created     time.Time `db:"created" json:"created"`
}

// ItemRequestDetail adds the derived list of items created in response
// to the request. The list is computed, never stored.
type ItemRequestDetail struct {
	ItemRequest
	Items []Item `json:"items"`
}
