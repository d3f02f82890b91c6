package database_test

import (
	"testing"

	"office-records-backend/internal/database"
	"office-records-backend/internal/model"
	"office-records-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAll_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.SeedAll(db, zap.NewNop()))
	require.NoError(t, database.SeedAll(db, zap.NewNop()))

	var admins []model.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, len(model.Roles))
	perRole := map[model.Role]int{}
	for _, a := range admins {
		perRole[a.Role]++
		assert.True(t, a.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(database.DefaultSeedPassword)))
	}
	for _, role := range model.Roles {
		assert.Equal(t, 1, perRole[role], role)
	}

	var departments, files int64
	require.NoError(t, db.Model(&model.Department{}).Count(&departments).Error)
	require.NoError(t, db.Model(&model.File{}).Count(&files).Error)
	assert.EqualValues(t, 3, departments)
	assert.EqualValues(t, 1, files)

	var ict model.Department
	require.NoError(t, db.Where("name = ?", "ICT").First(&ict).Error)
	require.NotNil(t, ict.HODID)
	var hod model.Admin
	require.NoError(t, db.First(&hod, *ict.HODID).Error)
	assert.Equal(t, model.RoleHOD, hod.Role)
}

func TestSeedAdmin_ResetsPassword(t *testing.T) {
	db := testutil.NewDB(t)

	first, err := database.SeedAdmin(db, "Ops", "ops", "ops@office.test", "first-pass", model.RoleBoss)
	require.NoError(t, err)
	second, err := database.SeedAdmin(db, "Ops", "ops", "ops@office.test", "second-pass", model.RoleBoss)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var stored model.Admin
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("second-pass")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("first-pass")))
}
