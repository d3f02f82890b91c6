package usecase

import (
	"testing"

	"office-records-backend/internal/model"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTasks(t *testing.T, today string) (*TaskUsecase, *gorm.DB, *testutil.Mailbox) {
	db := testutil.NewDB(t)
	notifier, box := newNotifier(t)
	uc := NewTaskUsecase(db, notifier, zap.NewNop())
	uc.now = fixedClock(today)
	return uc, db, box
}

func TestAssignTask(t *testing.T) {
	tasks, db, box := newTasks(t, "2024-06-01")
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	task, err := tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "Scan archive", DueDate: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)

	require.Len(t, box.Sent(), 1)
	assert.Equal(t, emp.Email, box.Sent()[0].To)

	_, err = tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: 9999, Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "x", DueDate: "next week"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteTask_MovesToFinished(t *testing.T) {
	tasks, db, _ := newTasks(t, "2024-06-05")
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	task, err := tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "Report", DueDate: "2024-06-10"})
	require.NoError(t, err)

	result, err := tasks.UpdateStatus(task.ID, emp, model.TaskInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, result.Task.Status)
	assert.Nil(t, result.Finished)

	result, err = tasks.UpdateStatus(task.ID, emp, model.TaskCompleted, "done")
	require.NoError(t, err)
	require.NotNil(t, result.Finished)
	assert.True(t, result.Finished.OnTime)
	assert.Equal(t, "done", result.Finished.CompletionNote)

	active, err := tasks.ForEmployee(emp.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	finished, err := tasks.FinishedForEmployee(emp.ID)
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, task.ID, finished[0].TaskID)

	_, err = tasks.UpdateStatus(task.ID, emp, model.TaskCompleted, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTask_Late(t *testing.T) {
	tasks, db, _ := newTasks(t, "2024-06-11")
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	task, err := tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "Report", DueDate: "2024-06-10"})
	require.NoError(t, err)

	result, err := tasks.UpdateStatus(task.ID, emp, model.TaskCompleted, "")
	require.NoError(t, err)
	assert.False(t, result.Finished.OnTime)
}

func TestUpdateTask_OtherEmployeeForbidden(t *testing.T) {
	tasks, db, _ := newTasks(t, "2024-06-01")
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)
	other := testutil.CreateAdmin(t, db, "other", model.RoleEmployee)

	task, err := tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "Report"})
	require.NoError(t, err)

	_, err = tasks.UpdateStatus(task.ID, other, model.TaskInProgress, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = tasks.UpdateStatus(task.ID, hod, model.TaskInProgress, "")
	assert.NoError(t, err)
}

func TestDeleteTask(t *testing.T) {
	tasks, db, _ := newTasks(t, "2024-06-01")
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	task, err := tasks.Assign(hod.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "Report"})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(task.ID))
	assert.ErrorIs(t, tasks.Delete(task.ID), ErrNotFound)
}

func TestTaskReport(t *testing.T) {
	tasks, db, _ := newTasks(t, "2024-06-15")
	boss := testutil.CreateAdmin(t, db, "boss", model.RoleBoss)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	_, err := tasks.Assign(boss.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "overdue", DueDate: "2024-06-01"})
	require.NoError(t, err)
	_, err = tasks.Assign(boss.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "open"})
	require.NoError(t, err)
	done, err := tasks.Assign(boss.ID, AssignTaskInput{EmployeeID: emp.ID, Title: "done", DueDate: "2024-06-30"})
	require.NoError(t, err)
	_, err = tasks.UpdateStatus(done.ID, emp, model.TaskCompleted, "")
	require.NoError(t, err)

	dashboard := NewDashboardUsecase(db)
	dashboard.now = fixedClock("2024-06-15")

	stats, err := dashboard.TaskReport(boss)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, repository.TaskStat{
		EmployeeID:   emp.ID,
		EmployeeName: "emp",
		Active:       2,
		Overdue:      1,
		Finished:     1,
		OnTime:       1,
	}, stats[0])
}
