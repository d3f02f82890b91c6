package usecase

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxEvidenceBytes = 5 << 20

type LeaveUsecase struct {
	db       *gorm.DB
	notifier *notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewLeaveUsecase(db *gorm.DB, notifier *notify.Notifier, log *zap.Logger) *LeaveUsecase {
	return &LeaveUsecase{db: db, notifier: notifier, log: log, now: time.Now}
}

type SubmitLeaveInput struct {
	LeaveType    model.LeaveType
	StartDate    string
	EndDate      string
	Reason       string
	Evidence     []byte
	EvidenceName string
	EvidenceMime string
}

// LeaveView is the transport shape: evidence travels as base64.
type LeaveView struct {
	model.LeaveApplication
	Evidence string `json:"evidence,omitempty"`
}

func ToLeaveView(l model.LeaveApplication) LeaveView {
	return LeaveView{LeaveApplication: l, Evidence: EncodeEvidence(l.Evidence)}
}

func ToLeaveViews(list []model.LeaveApplication) []LeaveView {
	views := make([]LeaveView, 0, len(list))
	for _, l := range list {
		views = append(views, ToLeaveView(l))
	}
	return views
}

func (u *LeaveUsecase) Submit(employeeID uint, in SubmitLeaveInput) (*model.LeaveApplication, error) {
	days, err := InclusiveDays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, invalid("%s", err.Error())
	}
	if len(in.Evidence) > maxEvidenceBytes {
		return nil, invalid("evidence exceeds %d bytes", maxEvidenceBytes)
	}
	if len(in.Evidence) > 0 && in.EvidenceMime == "" {
		in.EvidenceMime = http.DetectContentType(in.Evidence)
	}

	leave := &model.LeaveApplication{
		EmployeeID:   employeeID,
		LeaveType:    in.LeaveType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Days:         days,
		Reason:       strings.TrimSpace(in.Reason),
		Evidence:     in.Evidence,
		EvidenceName: in.EvidenceName,
		EvidenceMime: in.EvidenceMime,
		Status:       model.LeavePending,
		AppliedAt:    u.now(),
	}
	if err := repository.NewLeaveRepository(u.db).Create(leave); err != nil {
		return nil, err
	}

	leaveApplications.WithLabelValues(string(model.LeavePending)).Inc()
	u.log.Info("leave submitted", zap.Uint("employee_id", employeeID), zap.String("type", string(in.LeaveType)), zap.Int("days", days))
	return leave, nil
}

func (u *LeaveUsecase) ForEmployee(employeeID uint) ([]model.LeaveApplication, error) {
	return repository.NewLeaveRepository(u.db).GetByEmployeeID(employeeID)
}

// List returns applications visible to the reviewer; HODs only see their
// department.
func (u *LeaveUsecase) List(reviewer *model.Admin, status model.LeaveStatus) ([]model.LeaveApplication, error) {
	scope, err := staffScope(u.db, reviewer)
	if err != nil {
		return nil, err
	}
	return repository.NewLeaveRepository(u.db).GetAll(status, scope)
}

func (u *LeaveUsecase) Get(id uint) (*model.LeaveApplication, error) {
	leave, err := repository.NewLeaveRepository(u.db).GetByID(id)
	if err != nil {
		return nil, notFound(err, "leave application")
	}
	return leave, nil
}

// Cancel withdraws the employee's own pending application.
func (u *LeaveUsecase) Cancel(id, employeeID uint) (*model.LeaveApplication, error) {
	repo := repository.NewLeaveRepository(u.db)
	leave, err := repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "leave application")
	}
	if leave.EmployeeID != employeeID {
		return nil, fmt.Errorf("%w: not your leave application", ErrForbidden)
	}

	rows, err := repo.Decide(id, model.LeavePending, model.LeaveCancelled, nil, "", u.now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: leave application is already %s", ErrInvalidTransition, leave.Status)
	}

	leaveApplications.WithLabelValues(string(model.LeaveCancelled)).Inc()
	leave.Status = model.LeaveCancelled
	return leave, nil
}

// Decide approves or rejects a pending application.
func (u *LeaveUsecase) Decide(id uint, reviewer *model.Admin, status model.LeaveStatus, note string) (*model.LeaveApplication, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, invalid("decision must be approved or rejected")
	}

	var leave *model.LeaveApplication
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewLeaveRepository(tx)
		var err error
		leave, err = repo.GetByID(id)
		if err != nil {
			return notFound(err, "leave application")
		}
		if leave.EmployeeID == reviewer.ID {
			return fmt.Errorf("%w: you cannot decide your own leave", ErrForbidden)
		}

		scope, err := staffScope(tx, reviewer)
		if err != nil {
			return err
		}
		if scope != nil && !containsID(scope, leave.EmployeeID) {
			return fmt.Errorf("%w: employee is outside your department", ErrForbidden)
		}

		at := u.now()
		rows, err := repo.Decide(id, model.LeavePending, status, &reviewer.ID, note, at)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: leave application is already %s", ErrInvalidTransition, leave.Status)
		}
		leave.Status = status
		leave.ReviewedBy = &reviewer.ID
		leave.ReviewedAt = &at
		leave.ReviewNote = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	leaveApplications.WithLabelValues(string(status)).Inc()
	if leave.Employee != nil {
		u.notifier.Notify(notify.LeaveDecided(leave.Employee.Email, leave.Employee.Name, string(leave.LeaveType),
			leave.StartDate, leave.EndDate, string(status), note))
	}
	return leave, nil
}

type LeaveReportRow struct {
	EmployeeID   uint                    `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Days         map[model.LeaveType]int `json:"days"`
	Total        int                     `json:"total"`
}

// Report sums approved leave days per employee and type inside the month (or
// the whole year when month is 0). Leave spanning the period edge only counts
// the days inside it.
func (u *LeaveUsecase) Report(year, month int) ([]LeaveReportRow, error) {
	if year < 1 || month < 0 || month > 12 {
		return nil, invalid("invalid period %d-%d", year, month)
	}
	from, to := periodBounds(year, month)

	list, err := repository.NewLeaveRepository(u.db).GetApprovedInRange(from, to)
	if err != nil {
		return nil, err
	}

	rows := map[uint]*LeaveReportRow{}
	for _, l := range list {
		row, ok := rows[l.EmployeeID]
		if !ok {
			row = &LeaveReportRow{EmployeeID: l.EmployeeID, Days: map[model.LeaveType]int{}}
			if l.Employee != nil {
				row.EmployeeName = l.Employee.Name
			}
			rows[l.EmployeeID] = row
		}
		days := overlapDays(l.StartDate, l.EndDate, from, to)
		row.Days[l.LeaveType] += days
		row.Total += days
	}

	report := make([]LeaveReportRow, 0, len(rows))
	for _, row := range rows {
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].EmployeeID < report[j].EmployeeID })
	return report, nil
}

// DecodeEvidence accepts standard, raw or URL-safe base64 with an optional
// "data:<mime>;base64," prefix and returns the bytes and any declared mime.
func DecodeEvidence(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, "", nil
	}

	mime := ""
	if strings.HasPrefix(encoded, "data:") {
		comma := strings.Index(encoded, ",")
		if comma < 0 {
			return nil, "", invalid("malformed data URL")
		}
		header := encoded[len("data:"):comma]
		mime = strings.TrimSuffix(header, ";base64")
		encoded = encoded[comma+1:]
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(encoded); err == nil {
			return data, mime, nil
		}
	}
	return nil, "", invalid("evidence is not valid base64")
}

func EncodeEvidence(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// staffScope returns the employee ids a reviewer may act on, or nil for no
// restriction. HODs are limited to their department.
func staffScope(db *gorm.DB, reviewer *model.Admin) ([]uint, error) {
	if reviewer == nil || reviewer.Role != model.RoleHOD {
		return nil, nil
	}
	dept, err := repository.NewDepartmentRepository(db).FindByHOD(reviewer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []uint{}, nil
		}
		return nil, err
	}
	staff, err := repository.NewAdminRepository(db).GetByDepartment(dept.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(staff))
	for _, s := range staff {
		if s.ID != reviewer.ID {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
