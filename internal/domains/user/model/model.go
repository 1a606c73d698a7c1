package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPassword  = "password"
	FieldRoleID    = "role_id"
	FieldLastLogin = "last_login"

	RoleTable = "roles"
)

type User struct {
	ID        string     `db:"id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Email     string     `db:"email"`
	Phone     *string    `db:"phone"`
	Password  string     `db:"password"`
	RoleID    int        `db:"role_id"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata

	RoleName string `column:"name" db:"role_name" table:"roles"`
}

func (User) GetJoinQuery() string {
	return "INNER JOIN roles ON roles.id = users.role_id"
}

// Role normalises the joined roles row into the shared Role value.
func (u User) Role() model.Role {
	role := model.RoleFromName(u.RoleName)
	if u.RoleID != 0 {
		role.ID = u.RoleID
	}

	return role
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
