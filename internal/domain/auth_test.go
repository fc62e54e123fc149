package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/internal/repository"
	"github.com/wanderlands/backend/pkg/authenticator"
	"github.com/wanderlands/backend/pkg/errorx"
	"github.com/wanderlands/backend/pkg/testutil"
	"github.com/wanderlands/backend/pkg/xcontext"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	engine := authenticator.NewTokenEngine[model.AccessToken](xcontext.Configs(ctx).Auth)
	auth := NewAuthDomain(repository.NewUserRepository(), engine)

	_, err := auth.Register(ctx, &model.RegisterRequest{
		Username: "carol", Password: "hunter2",
	})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, &model.LoginRequest{
		Username: "carol", Password: "hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := engine.Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "carol", claims.Username)
	require.False(t, claims.IsAdmin)
}

func TestAuthRegisterValidation(t *testing.T) {
	ctx := testutil.MockContext()
	engine := authenticator.NewTokenEngine[model.AccessToken](xcontext.Configs(ctx).Auth)
	auth := NewAuthDomain(repository.NewUserRepository(), engine)

	_, err := auth.Register(ctx, &model.RegisterRequest{Username: "", Password: "x"})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.BadRequest})

	_, err = auth.Register(ctx, &model.RegisterRequest{Username: "carol", Password: ""})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.BadRequest})
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	engine := authenticator.NewTokenEngine[model.AccessToken](xcontext.Configs(ctx).Auth)
	auth := NewAuthDomain(repository.NewUserRepository(), engine)

	_, err := auth.Register(ctx, &model.RegisterRequest{
		Username: "alice", Password: "hunter2",
	})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.AlreadyExists})
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	ctx := testutil.MockContext()
	engine := authenticator.NewTokenEngine[model.AccessToken](xcontext.Configs(ctx).Auth)
	auth := NewAuthDomain(repository.NewUserRepository(), engine)

	_, err := auth.Register(ctx, &model.RegisterRequest{
		Username: "carol", Password: "hunter2",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &model.LoginRequest{Username: "carol", Password: "wrong"})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.Unauthenticated})

	_, err = auth.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "x"})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.Unauthenticated})
}
