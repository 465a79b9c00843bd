package models

import "go.mongodb.org/mongo-driver/bson"

// User roles form a fixed enumeration.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleWarehouse = "warehouse"
	RoleStore     = "store"
)

type User struct {
	Meta     `bson:",inline"`
	Username string `json:"username" bson:"username" binding:"required"`
	Email    string `json:"email" bson:"email" binding:"required,email"`
	FullName string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Role     string `json:"role" bson:"role" binding:"required,oneof=admin manager warehouse store"`
	IsActive *bool  `json:"is_active" bson:"is_active"`
}

type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin manager warehouse store"`
	IsActive *bool   `json:"is_active"`
}

func (u *UserUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.Username != nil {
		patch["username"] = *u.Username
	}
	if u.Email != nil {
		patch["email"] = *u.Email
	}
	if u.FullName != nil {
		patch["full_name"] = *u.FullName
	}
	if u.Role != nil {
		patch["role"] = *u.Role
	}
	if u.IsActive != nil {
		patch["is_active"] = *u.IsActive
	}
	return patch
}
