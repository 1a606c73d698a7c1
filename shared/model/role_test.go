package model_test

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.Role
	}{
		{name: "admin", in: "admin", want: model.Role{ID: constant.RoleIDAdmin, Name: constant.RoleAdmin}},
		{name: "mixed case staff", in: " Staff ", want: model.Role{ID: constant.RoleIDStaff, Name: constant.RoleStaff}},
		{name: "legacy cleaner", in: "cleaner", want: model.Role{ID: constant.RoleIDStaff, Name: constant.RoleStaff}},
		{name: "guest", in: "guest", want: model.Role{ID: constant.RoleIDGuest, Name: constant.RoleGuest}},
		{name: "unknown", in: "owner", want: model.Role{Name: "owner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.RoleFromName(tt.in))
		})
	}
}

func TestAuthContext(t *testing.T) {
	actor := model.NewAuthContext("user-1", "guest")

	assert.True(t, actor.IsAuthenticated())
	assert.True(t, actor.Role.IsGuest())
	assert.True(t, actor.Owns("user-1"))
	assert.False(t, actor.Owns("user-2"))

	assert.False(t, model.AuthContext{}.IsAuthenticated())
	assert.False(t, model.AuthContext{}.Owns(""))

	system := model.SystemActor()
	assert.True(t, system.Role.IsSystem())
	assert.False(t, system.Role.IsAdmin())
}
