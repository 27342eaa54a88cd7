package request

// CreateRequestReq asks other users to list an item
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}
