package service

import (
	"strings"
	"testing"

	"github.com/futurecast/futurecast/database"
	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginOrCreate(t *testing.T) {
	setup(t)
	svc := UserService{}

	user, created, err := svc.LoginOrCreate(testAddress)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, strings.ToLower(testAddress), user.WalletAddress)
	assert.Equal(t, "User abcd", user.Name)
	assert.Equal(t, strings.ToLower(testAddress)+"@futurecast.app", user.Email)
	assert.NotEmpty(t, user.Password)
	assert.False(t, crypto.CheckPasswordHash(user.Password, ""))

	again, created, err := svc.LoginOrCreate(strings.ToUpper(testAddress[:2]) + strings.ToLower(testAddress[2:]))
	require.Error(t, err, "0X prefix is not a valid address")
	assert.Nil(t, again)
	assert.False(t, created)

	again, created, err = svc.LoginOrCreate(strings.ToLower(testAddress))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.Id, again.Id)

	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginOrCreateRejectsInvalidAddress(t *testing.T) {
	setup(t)
	svc := UserService{}

	for _, address := range []string{"", "0x123", "abcdef0123456789abcdef0123456789abcdef0101", "0xZZcdef0123456789abcdef0123456789abcdef01"} {
		_, _, err := svc.LoginOrCreate(address)
		assert.ErrorIs(t, err, ErrInvalidAddress, address)
	}

	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetByAddress(t *testing.T) {
	setup(t)
	svc := UserService{}

	_, err := svc.GetByAddress(testAddress)
	assert.True(t, database.IsNotFound(err))

	_, _, err = svc.LoginOrCreate(testAddress)
	require.NoError(t, err)

	user, err := svc.GetByAddress(testAddress)
	require.NoError(t, err)
	assert.Equal(t, "User abcd", user.Name)
}
