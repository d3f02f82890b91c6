// Package workflow holds the record lifecycle rules independent of storage.
//
//	pending   --forward-->  forwarded
//	pending   --complete--> completed
//	forwarded --accept-->   accepted
//	forwarded --reject-->   rejected
//
// accepted, rejected and completed are terminal.
package workflow

import (
	"errors"
	"fmt"

	"office-records-backend/internal/model"
)

type Action string

const (
	ActionForward  Action = "forward"
	ActionComplete Action = "complete"
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
)

var ErrInvalidTransition = errors.New("invalid record transition")

var transitions = map[model.RecordStatus]map[Action]model.RecordStatus{
	model.RecordPending: {
		ActionForward:  model.RecordForwarded,
		ActionComplete: model.RecordCompleted,
	},
	model.RecordForwarded: {
		ActionAccept: model.RecordAccepted,
		ActionReject: model.RecordRejected,
	},
}

// Next returns the status reached by applying action to from.
func Next(from model.RecordStatus, action Action) (model.RecordStatus, error) {
	if to, ok := transitions[from][action]; ok {
		return to, nil
	}
	return "", fmt.Errorf("%w: cannot %s a %s record", ErrInvalidTransition, action, from)
}

// ActionForDecision maps a review decision onto the record action.
func ActionForDecision(d model.ReviewDecision) Action {
	if d == model.DecisionAccept {
		return ActionAccept
	}
	return ActionReject
}

// ForwardStatusFor is the forward row status written alongside a review.
func ForwardStatusFor(d model.ReviewDecision) model.ForwardStatus {
	if d == model.DecisionAccept {
		return model.ForwardAccepted
	}
	return model.ForwardRejected
}

// Allowed lists the actions available from a status, for UI hints.
func Allowed(from model.RecordStatus) []Action {
	var actions []Action
	for _, a := range []Action{ActionForward, ActionComplete, ActionAccept, ActionReject} {
		if _, ok := transitions[from][a]; ok {
			actions = append(actions, a)
		}
	}
	return actions
}
