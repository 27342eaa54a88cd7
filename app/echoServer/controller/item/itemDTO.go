package item

// CreateItemReq lists a new item; requestId links a fulfilling item
// back to an open item request
// swagger:model CreateItemReq
type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemReq carries a partial update; absent fields are preserved
// swagger:model UpdateItemReq
type UpdateItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentReq is the review payload
// swagger:model CreateCommentReq
type CreateCommentReq struct {
	Text string `json:"text" validate:"required"`
}
