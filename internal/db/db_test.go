package db

import (
	"errors"
	"fmt"
	"testing"

	"feedbackhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever", nil)
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	gdb, err := Open("sqlite", memoryDSN(), nil)
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, false))
	assert.True(t, gdb.Migrator().HasTable(&model.User{}))
	assert.True(t, gdb.Migrator().HasTable(&model.Feedback{}))

	user := model.User{Username: "alice", Password: "x", Email: "a@x.io", FirstName: "A", LastName: "L"}
	require.NoError(t, gdb.Create(&user).Error)

	require.NoError(t, Migrate(gdb, false))
	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, Migrate(gdb, true))
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIsDuplicateKey(t *testing.T) {
	gdb, err := Open("sqlite", memoryDSN(), nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb, false))

	user := model.User{Username: "alice", Password: "x", Email: "a@x.io", FirstName: "A", LastName: "L"}
	require.NoError(t, gdb.Create(&user).Error)
	dup := user
	err = gdb.Create(&dup).Error
	require.Error(t, err)

	assert.True(t, IsDuplicateKey(err))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(errors.New("Error 1062: Duplicate entry 'alice' for key 'PRIMARY'")))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
	assert.False(t, IsDuplicateKey(nil))
}
