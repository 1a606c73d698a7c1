package model

import (
	"hotel/shared/constant"
	"strings"
)

// Role is the normalised role value carried across repository and service boundaries.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var roleIDs = map[string]int{
	constant.RoleAdmin: constant.RoleIDAdmin,
	constant.RoleStaff: constant.RoleIDStaff,
	constant.RoleGuest: constant.RoleIDGuest,
}

// RoleFromName builds a Role from a name, accepting the legacy "cleaner" alias for staff.
// Unknown names map to a Role with ID 0.
func RoleFromName(name string) Role {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "cleaner" {
		name = constant.RoleStaff
	}

	return Role{ID: roleIDs[name], Name: name}
}

func (r Role) IsAdmin() bool {
	return r.Name == constant.RoleAdmin
}

func (r Role) IsStaff() bool {
	return r.Name == constant.RoleStaff
}

func (r Role) IsGuest() bool {
	return r.Name == constant.RoleGuest
}

func (r Role) IsSystem() bool {
	return r.Name == constant.RoleSystem
}

// AuthContext is the verified caller identity passed into every service operation.
type AuthContext struct {
	UserID string
	Role   Role
}

func NewAuthContext(userID, role string) AuthContext {
	return AuthContext{
		UserID: userID,
		Role:   RoleFromName(role),
	}
}

// SystemActor is used for provider-driven transitions such as payment confirmation.
func SystemActor() AuthContext {
	return AuthContext{
		UserID: constant.ContextSystem,
		Role:   Role{Name: constant.RoleSystem},
	}
}

func (a AuthContext) IsAuthenticated() bool {
	return a.UserID != "" && a.Role.Name != ""
}

// Owns reports whether the caller is the owner of a resource.
func (a AuthContext) Owns(ownerID string) bool {
	return a.UserID != "" && a.UserID == ownerID
}
