package usecase

import (
	"testing"

	"office-records-backend/internal/model"
	"office-records-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_PerRole(t *testing.T) {
	db := testutil.NewDB(t)
	boss := testutil.CreateAdmin(t, db, "boss", model.RoleBoss)
	registry := testutil.CreateAdmin(t, db, "registry", model.RoleRegistry)
	hr := testutil.CreateAdmin(t, db, "hr", model.RoleHumanResource)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)
	testutil.CreateFile(t, db, "F/1", registry)

	dashboard := NewDashboardUsecase(db)

	stats, err := dashboard.Dashboard(boss)
	require.NoError(t, err)
	assert.Contains(t, stats, "staff_by_role")
	assert.Contains(t, stats, "records_by_status")
	assert.Contains(t, stats, "active_tasks")

	stats, err = dashboard.Dashboard(registry)
	require.NoError(t, err)
	filesByType, ok := stats["files_by_type"].(map[model.FileType]int64)
	require.True(t, ok)
	assert.Equal(t, int64(1), filesByType[model.FileInternal])

	stats, err = dashboard.Dashboard(hr)
	require.NoError(t, err)
	assert.Contains(t, stats, "leaves_by_status")

	stats, err = dashboard.Dashboard(emp)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, stats["role"])
	assert.Equal(t, int64(0), stats["my_pending_forwards"])
	assert.NotContains(t, stats, "staff_by_role")
}
