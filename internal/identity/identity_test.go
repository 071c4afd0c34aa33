package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(WithIdentity(context.Background(), Identity{Role: RoleAdmin}))
	assert.False(t, ok, "identity without a user id")

	id, ok := FromContext(WithIdentity(context.Background(), Identity{UserID: "u1", Role: RoleAdmin}))
	assert.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, RoleAdmin, id.Role)
}
