package service

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-0123456789"

func newAuthFixture() (*AuthService, *fakeUsers) {
	users := newFakeUsers()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour}}
	return NewAuthService(users, cfg), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	user := &model.User{Name: "Ada", Email: " Ada@Example.com ", Password: "s3cret-pass"}
	require.NoError(t, svc.Register(ctx, user))
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	err := svc.Register(ctx, &model.User{Name: "Ada 2", Email: "ada@example.com", Password: "x"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	token, logged, err := svc.Login(ctx, "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "x")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	stored, _ := users.FindByID(ctx, user.ID)
	stored.Disabled = true
	users.Update(ctx, stored)
	_, _, err = svc.Login(ctx, "ada@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}
