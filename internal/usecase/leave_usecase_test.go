package usecase

import (
	"encoding/base64"
	"testing"

	"office-records-backend/internal/model"
	"office-records-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLeaves(t *testing.T) (*LeaveUsecase, *gorm.DB, *testutil.Mailbox) {
	db := testutil.NewDB(t)
	notifier, box := newNotifier(t)
	uc := NewLeaveUsecase(db, notifier, zap.NewNop())
	uc.now = fixedClock("2024-01-01")
	return uc, db, box
}

func TestSubmitLeave(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	leave, err := leaves.Submit(emp.ID, SubmitLeaveInput{
		LeaveType: model.LeaveAnnual,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
		Reason:    "family trip",
		Evidence:  []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.LeavePending, leave.Status)
	assert.Equal(t, 3, leave.Days)
	assert.NotEmpty(t, leave.EvidenceMime)

	mine, err := leaves.ForEmployee(emp.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	view := ToLeaveView(mine[0])
	decoded, err := base64.StdEncoding.DecodeString(view.Evidence)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(decoded))
}

func TestSubmitLeave_InvalidDates(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)

	_, err := leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: model.LeaveSick, StartDate: "2024-01-05", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: model.LeaveSick, StartDate: "yesterday", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecideLeave(t *testing.T) {
	leaves, db, box := newLeaves(t)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)
	hr := testutil.CreateAdmin(t, db, "hr", model.RoleHumanResource)

	leave, err := leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: model.LeaveSick, StartDate: "2024-01-10", EndDate: "2024-01-11"})
	require.NoError(t, err)

	_, err = leaves.Decide(leave.ID, hr, model.LeaveCancelled, "")
	assert.ErrorIs(t, err, ErrValidation)

	decided, err := leaves.Decide(leave.ID, hr, model.LeaveApproved, "get well")
	require.NoError(t, err)
	assert.Equal(t, model.LeaveApproved, decided.Status)
	require.NotNil(t, decided.ReviewedBy)
	assert.Equal(t, hr.ID, *decided.ReviewedBy)

	_, err = leaves.Decide(leave.ID, hr, model.LeaveRejected, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	sent := box.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, emp.Email, sent[0].To)
}

func TestDecideLeave_OwnApplicationForbidden(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	hr := testutil.CreateAdmin(t, db, "hr", model.RoleHumanResource)

	leave, err := leaves.Submit(hr.ID, SubmitLeaveInput{LeaveType: model.LeaveAnnual, StartDate: "2024-01-10", EndDate: "2024-01-10"})
	require.NoError(t, err)

	_, err = leaves.Decide(leave.ID, hr, model.LeaveApproved, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDecideLeave_HODScope(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	hod := testutil.CreateAdmin(t, db, "hod", model.RoleHOD)
	inside := testutil.CreateAdmin(t, db, "inside", model.RoleEmployee)
	outside := testutil.CreateAdmin(t, db, "outside", model.RoleEmployee)

	dept := &model.Department{Name: "ICT", HODID: &hod.ID}
	require.NoError(t, db.Create(dept).Error)
	require.NoError(t, db.Model(inside).Update("department_id", dept.ID).Error)

	in, err := leaves.Submit(inside.ID, SubmitLeaveInput{LeaveType: model.LeaveAnnual, StartDate: "2024-01-10", EndDate: "2024-01-12"})
	require.NoError(t, err)
	out, err := leaves.Submit(outside.ID, SubmitLeaveInput{LeaveType: model.LeaveAnnual, StartDate: "2024-01-10", EndDate: "2024-01-12"})
	require.NoError(t, err)

	queue, err := leaves.List(hod, model.LeavePending)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, in.ID, queue[0].ID)

	_, err = leaves.Decide(out.ID, hod, model.LeaveApproved, "")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = leaves.Decide(in.ID, hod, model.LeaveApproved, "")
	assert.NoError(t, err)
}

func TestCancelLeave(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)
	other := testutil.CreateAdmin(t, db, "other", model.RoleEmployee)

	leave, err := leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: model.LeaveStudy, StartDate: "2024-02-01", EndDate: "2024-02-02"})
	require.NoError(t, err)

	_, err = leaves.Cancel(leave.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := leaves.Cancel(leave.ID, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveCancelled, cancelled.Status)

	_, err = leaves.Cancel(leave.ID, emp.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLeaveReport(t *testing.T) {
	leaves, db, _ := newLeaves(t)
	emp := testutil.CreateAdmin(t, db, "emp", model.RoleEmployee)
	hr := testutil.CreateAdmin(t, db, "hr", model.RoleHumanResource)

	submitAndApprove := func(lt model.LeaveType, start, end string) {
		leave, err := leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: lt, StartDate: start, EndDate: end})
		require.NoError(t, err)
		_, err = leaves.Decide(leave.ID, hr, model.LeaveApproved, "")
		require.NoError(t, err)
	}
	submitAndApprove(model.LeaveAnnual, "2024-01-30", "2024-02-02")
	submitAndApprove(model.LeaveSick, "2024-01-10", "2024-01-10")

	// pending leave is not counted
	_, err := leaves.Submit(emp.ID, SubmitLeaveInput{LeaveType: model.LeaveAnnual, StartDate: "2024-01-15", EndDate: "2024-01-16"})
	require.NoError(t, err)

	report, err := leaves.Report(2024, 1)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, emp.ID, report[0].EmployeeID)
	assert.Equal(t, "emp", report[0].EmployeeName)
	assert.Equal(t, 2, report[0].Days[model.LeaveAnnual])
	assert.Equal(t, 1, report[0].Days[model.LeaveSick])
	assert.Equal(t, 3, report[0].Total)

	_, err = leaves.Report(2024, 13)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecodeEvidence(t *testing.T) {
	payload := []byte("hello evidence")

	data, mime, err := DecodeEvidence(base64.StdEncoding.EncodeToString(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Empty(t, mime)

	data, mime, err = DecodeEvidence("data:image/png;base64," + base64.StdEncoding.EncodeToString(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", mime)

	data, _, err = DecodeEvidence(base64.RawURLEncoding.EncodeToString([]byte{0xfb, 0xff, 0xfe}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff, 0xfe}, data)

	data, _, err = DecodeEvidence("")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, _, err = DecodeEvidence("***not base64***")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, "", EncodeEvidence(nil))
}
