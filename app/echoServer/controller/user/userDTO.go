package user

// CreateUserReq is the signup payload
// swagger:model CreateUserReq
type CreateUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserReq carries a partial update; absent fields are preserved
// swagger:model UpdateUserReq
type UpdateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}
