package services

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := NewAuthService(f.users, utils.NewTokenIssuer("test-secret", time.Hour))

	user, err := auth.Register(ctx, models.RegisterData{Username: "alice", Password: "lemon-pass", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, "lemon-pass", user.Password)

	_, err = auth.Register(ctx, models.RegisterData{Username: "alice", Password: "another-pass"})
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = auth.Login(ctx, models.LoginData{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperr.ErrBadCredentials)
	_, err = auth.Login(ctx, models.LoginData{Username: "nobody", Password: "lemon-pass"})
	assert.ErrorIs(t, err, apperr.ErrBadCredentials)

	token, err := auth.Login(ctx, models.LoginData{Username: "alice", Password: "lemon-pass"})
	require.NoError(t, err)

	_, err = f.users.AddToGroup(ctx, user.ID, policy.RoleManager)
	require.NoError(t, err)

	p, err := auth.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, p.Authenticated)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "alice", p.Username)
	assert.True(t, p.Subject().IsManager())

	me, err := auth.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestResolveRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := NewAuthService(f.users, utils.NewTokenIssuer("test-secret", time.Hour))

	_, err := auth.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	orphan, err := utils.NewTokenIssuer("test-secret", time.Hour).GenerateToken(999, "ghost")
	require.NoError(t, err)
	_, err = auth.Resolve(ctx, orphan)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	_, err = auth.Me(ctx, Principal{})
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}
