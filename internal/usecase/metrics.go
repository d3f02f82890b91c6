package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsForwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "office_records_forwarded_total",
		Help: "Records forwarded to a recipient.",
	})

	recordReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "office_record_reviews_total",
		Help: "Reviews of forwarded records by decision.",
	}, []string{"decision"})

	leaveApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "office_leave_applications_total",
		Help: "Leave applications by outcome (submitted, approved, rejected, cancelled).",
	}, []string{"status"})

	tasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "office_tasks_completed_total",
		Help: "Completed tasks, split by whether they met the due date.",
	}, []string{"on_time"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "office_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})
)
