package permissions_test

import (
	"conference/permissions"
	"conference/shared/constant"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/admin/login", http.MethodPost)
	assert.True(t, login.Skip)

	edit := data.FindPermissions("/admin/booking/{id}/edit", http.MethodPost)
	assert.False(t, edit.Skip)
	assert.Equal(t, []string{constant.RoleAdmin}, edit.Permissions)

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/register", http.MethodPost))
}
