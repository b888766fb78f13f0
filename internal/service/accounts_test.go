package service

import (
	"bitwise74/tourbuddy/config"
	"bitwise74/tourbuddy/db"
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/pkg/security"
	"bitwise74/tourbuddy/validators"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cheapArgon() *security.ArgonHash {
	return &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestAccounts(t *testing.T) (*Accounts, *gorm.DB) {
	t.Helper()

	d, err := db.New(config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	return NewAccounts(d, cheapArgon()), d
}

func pendingUser(username, email, token string) *model.User {
	return &model.User{
		Username:          username,
		Email:             email,
		VerificationToken: &token,
	}
}

func TestRegisterPersistsUnverifiedUser(t *testing.T) {
	a, d := newTestAccounts(t)
	ctx := context.Background()

	u := pendingUser("alice", "A@X.com ", "tok-1")
	require.NoError(t, a.Register(ctx, u, "pw1"))

	var stored model.User
	require.NoError(t, d.Where("username = ?", "alice").First(&stored).Error)

	assert.Len(t, stored.ID, 16)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.False(t, stored.Verified)
	require.NotNil(t, stored.VerificationToken)
	assert.Equal(t, "tok-1", *stored.VerificationToken)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	a, d := newTestAccounts(t)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, pendingUser("alice", "a@x.com", "tok-1"), "pw1"))

	err := a.Register(ctx, pendingUser("alice", "other@x.com", "tok-2"), "pw1")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	err = a.Register(ctx, pendingUser("bob", "a@x.com", "tok-3"), "bobpass123")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	var n int64
	require.NoError(t, d.Model(&model.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	a, _ := newTestAccounts(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"empty username", "", "a@x.com", "pw1", validators.ErrUsernameEmpty},
		{"bad email", "alice", "not-an-email", "pw1", validators.ErrEmailInvalid},
		{"empty password", "alice", "a@x.com", "", validators.ErrPasswordEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Register(ctx, pendingUser(tt.username, tt.email, "tok"), tt.password)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyConsumesTokenOnce(t *testing.T) {
	a, d := newTestAccounts(t)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, pendingUser("alice", "a@x.com", "tok-1"), "pw1"))
	require.NoError(t, a.Verify(ctx, "tok-1"))

	var stored model.User
	require.NoError(t, d.Where("username = ?", "alice").First(&stored).Error)
	assert.True(t, stored.Verified)
	assert.Nil(t, stored.VerificationToken)

	assert.ErrorIs(t, a.Verify(ctx, "tok-1"), ErrInvalidToken)
}

func TestVerifyUnknownToken(t *testing.T) {
	a, _ := newTestAccounts(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.Verify(ctx, ""), ErrInvalidToken)
	assert.ErrorIs(t, a.Verify(ctx, "nope"), ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	a, _ := newTestAccounts(t)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, pendingUser("alice", "a@x.com", "tok-1"), "pw1"))

	u, err := a.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.Verified)

	_, err = a.Authenticate(ctx, "alice", "wrongpass1")
	assert.ErrorIs(t, err, ErrAuthFailure)

	_, err = a.Authenticate(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrAuthFailure)

	_, err = a.Authenticate(ctx, "", "pw1")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = a.Authenticate(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestGet(t *testing.T) {
	a, _ := newTestAccounts(t)
	ctx := context.Background()

	u := pendingUser("alice", "a@x.com", "tok-1")
	require.NoError(t, a.Register(ctx, u, "pw1"))

	got, err := a.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = a.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterStoreFailureHidesCause(t *testing.T) {
	a, d := newTestAccounts(t)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = a.Register(context.Background(), pendingUser("alice", "a@x.com", "tok-1"), "pw1")

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "failed to check if user is registered", err.Error())
	assert.Error(t, errors.Unwrap(err))
}
