package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUser_Shapes(t *testing.T) {
	flat := map[string]any{"id": "u1", "name": "Admin", "email": " admin@crm.com ", "role": "ADMIN"}
	cases := map[string]any{
		"flat":      flat,
		"user":      map[string]any{"user": flat, "token": "t"},
		"data.user": map[string]any{"data": map[string]any{"user": flat, "token": "t"}},
		"user.user": map[string]any{"user": map[string]any{"user": flat}},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			u, err := normalizeUser(raw)
			require.NoError(t, err)
			assert.Equal(t, UserSnapshot{ID: "u1", Name: "Admin", Email: "admin@crm.com", Role: "admin"}, *u)
		})
	}
}

func TestNormalizeUser_MongoIDAndNumbers(t *testing.T) {
	u, err := normalizeUser(map[string]any{"_id": "abc", "role": "Operator"})
	require.NoError(t, err)
	assert.Equal(t, "abc", u.ID)
	assert.Equal(t, RoleOperator, u.Role)

	u, err = normalizeUser(map[string]any{"id": float64(7), "role": "operator"})
	require.NoError(t, err)
	assert.Equal(t, "7", u.ID)
}

func TestNormalizeUser_Rejects(t *testing.T) {
	_, err := normalizeUser("not an object")
	assert.Error(t, err)

	_, err = normalizeUser(map[string]any{"name": "nobody"})
	assert.Error(t, err, "a user without id or role is not a user")

	_, err = normalizeUser(nil)
	assert.Error(t, err)
}

func TestParseStoredUser(t *testing.T) {
	u, err := parseStoredUser(`{"id":"1","name":"Op","email":"op@crm.com","role":"operator"}`)
	require.NoError(t, err)
	assert.Equal(t, "Op", u.Name)

	_, err = parseStoredUser(`{not json`)
	assert.Error(t, err)
}

func TestUserSnapshotHelpers(t *testing.T) {
	var nilUser *UserSnapshot
	assert.Equal(t, "User", nilUser.DisplayName())
	assert.False(t, nilUser.IsAdmin())

	u := &UserSnapshot{Email: "x@crm.com", Role: RoleAdmin}
	assert.Equal(t, "x@crm.com", u.DisplayName())
	assert.True(t, u.IsAdmin())
}
