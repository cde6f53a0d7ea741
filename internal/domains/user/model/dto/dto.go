package dto

import (
	"servana/internal/domains/user/model"
)

// UserResponse is the public view of a customer account. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Role = mod.Role
}
