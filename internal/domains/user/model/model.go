package model

import "servana/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
	FieldRole     = "role"
)

// User is the customer variant of an account. Providers live in their own
// table; email uniqueness across both is enforced at the auth service.
type User struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}
