package model

import (
	"fmt"
	"strings"
)

// Status values arrive from forms in whatever casing the client used.
// They are matched case-insensitively and stored in one canonical form.

type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordForwarded RecordStatus = "forwarded"
	RecordAccepted  RecordStatus = "accepted"
	RecordRejected  RecordStatus = "rejected"
	RecordCompleted RecordStatus = "completed"
)

var recordStatuses = []RecordStatus{RecordPending, RecordForwarded, RecordAccepted, RecordRejected, RecordCompleted}

func ParseRecordStatus(s string) (RecordStatus, error) {
	return parseEnum("record status", s, recordStatuses)
}

// IsTerminal reports whether no workflow action can move the record further.
func (s RecordStatus) IsTerminal() bool {
	return s == RecordAccepted || s == RecordRejected || s == RecordCompleted
}

type ForwardStatus string

const (
	ForwardPending  ForwardStatus = "Pending"
	ForwardAccepted ForwardStatus = "Accepted"
	ForwardRejected ForwardStatus = "Rejected"
)

var forwardStatuses = []ForwardStatus{ForwardPending, ForwardAccepted, ForwardRejected}

func ParseForwardStatus(s string) (ForwardStatus, error) {
	return parseEnum("forward status", s, forwardStatuses)
}

type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)

func ParseReviewDecision(s string) (ReviewDecision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "accepted", "approve":
		return DecisionAccept, nil
	case "reject", "rejected", "decline":
		return DecisionReject, nil
	}
	return "", fmt.Errorf("unknown review decision %q", s)
}

type FileType string

const (
	FileInternal  FileType = "internal"
	FileExternal  FileType = "external"
	FileIncoming  FileType = "incoming"
	FileOutgoing  FileType = "outgoing"
	FileOpen      FileType = "open"
	FileSecret    FileType = "secret"
	FileSubject   FileType = "subject"
	FileTemporary FileType = "temporary"
)

var fileTypes = []FileType{FileInternal, FileExternal, FileIncoming, FileOutgoing, FileOpen, FileSecret, FileSubject, FileTemporary}

func ParseFileType(s string) (FileType, error) {
	return parseEnum("file type", s, fileTypes)
}

type LeaveType string

const (
	LeaveAnnual        LeaveType = "annual"
	LeaveSick          LeaveType = "sick"
	LeaveMaternity     LeaveType = "maternity"
	LeavePaternity     LeaveType = "paternity"
	LeaveStudy         LeaveType = "study"
	LeaveCompassionate LeaveType = "compassionate"
	LeaveUnpaid        LeaveType = "unpaid"
	LeaveOther         LeaveType = "other"
)

var leaveTypes = []LeaveType{LeaveAnnual, LeaveSick, LeaveMaternity, LeavePaternity, LeaveStudy, LeaveCompassionate, LeaveUnpaid, LeaveOther}

func ParseLeaveType(s string) (LeaveType, error) {
	return parseEnum("leave type", s, leaveTypes)
}

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

var leaveStatuses = []LeaveStatus{LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled}

func ParseLeaveStatus(s string) (LeaveStatus, error) {
	return parseEnum("leave status", s, leaveStatuses)
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var taskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}

func ParseTaskStatus(s string) (TaskStatus, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return parseEnum("task status", normalized, taskStatuses)
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var taskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func ParseTaskPriority(s string) (TaskPriority, error) {
	if strings.TrimSpace(s) == "" {
		return PriorityMedium, nil
	}
	return parseEnum("task priority", s, taskPriorities)
}

func parseEnum[T ~string](kind, s string, allowed []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range allowed {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, s)
}
