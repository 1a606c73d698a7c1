package permissions_test

import (
	"hotel/permissions"
	"hotel/shared/constant"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	table := permissions.Get()
	require.NotNil(t, table)

	tests := []struct {
		name    string
		path    string
		method  string
		skip    bool
		allowed []string
		denied  []string
	}{
		{"login is public", "/v1/auth/login", http.MethodPost, true, nil, nil},
		{"health is public", "/health", http.MethodGet, true, nil, nil},
		{
			"guests create bookings", "/v1/bookings/", http.MethodPost, false,
			[]string{constant.RoleAdmin, constant.RoleStaff, constant.RoleGuest}, nil,
		},
		{
			"front desk sees active bookings", "/v1/bookings/active", http.MethodGet, false,
			[]string{constant.RoleAdmin, constant.RoleStaff}, []string{constant.RoleGuest},
		},
		{
			"front desk exports", "/v1/bookings/export", http.MethodGet, false,
			[]string{constant.RoleAdmin, constant.RoleStaff}, []string{constant.RoleGuest},
		},
		{
			"status changes are checked per edge", "/v1/bookings/{id}/status", http.MethodPatch, false,
			[]string{constant.RoleAdmin, constant.RoleStaff, constant.RoleGuest}, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := table.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, permission.Path)
			assert.Equal(t, tt.skip, permission.Skip)

			for _, role := range tt.allowed {
				assert.True(t, permission.Allows(role), role)
			}

			for _, role := range tt.denied {
				assert.False(t, permission.Allows(role), role)
			}
		})
	}

	assert.Empty(t, table.FindPermissions("/v1/rooms/", http.MethodPost).Path)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid",
			data: `{"endpoints":[{"path":"/v1/rooms/{id}","method":"GET","permissions":["guest"]}]}`,
		},
		{
			name:    "unknown role",
			data:    `{"endpoints":[{"path":"/v1/rooms/{id}","method":"GET","permissions":["cleaner"]}]}`,
			wantErr: `unknown role "cleaner" for GET /v1/rooms/{id}`,
		},
		{
			name: "duplicate endpoint",
			data: `{"endpoints":[{"path":"/v1/rooms/{id}","method":"GET"},` +
				`{"path":"/v1/rooms/{id}","method":"get"}]}`,
			wantErr: "duplicate permission for GET /v1/rooms/{id}",
		},
		{
			name:    "malformed",
			data:    `{"endpoints":`,
			wantErr: "failed to decode permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := permissions.Load([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, table.FindPermissions("/v1/rooms/{id}", "get").Allows(constant.RoleGuest))
		})
	}
}
