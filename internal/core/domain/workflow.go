package domain

import "strings"

// Status is the outcome recorded at a single approval gate
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a gate status filter
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// Gate identifies an approval stage
type Gate string

const (
	GateAdmin   Gate = "admin"
	GateGS      Gate = "gs"
	GateDS      Gate = "ds"
	GatePublish Gate = "publish"
)

// Action is what an approver decided at a gate
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ParseAction validates an action string
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	}
	return "", ErrInvalidAction
}

// Stage is the position of a cause in the workflow, derived from its status fields
type Stage string

const (
	StagePendingAdmin Stage = "pending_admin"
	StagePendingGS    Stage = "pending_gs"
	StagePendingDS    Stage = "pending_ds"
	StageApproved     Stage = "approved"
	StagePublished    Stage = "published"
	StageCompleted    Stage = "completed"
	StageRejected     Stage = "rejected"
)

// CauseState is the subset of a cause the state machine reads and writes
type CauseState struct {
	AdminStatus Status
	GSStatus    Status
	DSStatus    Status
	FinalStatus Status
	IsPublished bool
	IsCompleted bool
}

// NewCauseState is the state of a freshly submitted cause
func NewCauseState() CauseState {
	return CauseState{
		AdminStatus: StatusPending,
		GSStatus:    StatusPending,
		DSStatus:    StatusPending,
		FinalStatus: StatusPending,
	}
}

// Stage derives the workflow position
func (s CauseState) Stage() Stage {
	switch {
	case s.FinalStatus == StatusRejected,
		s.AdminStatus == StatusRejected,
		s.GSStatus == StatusRejected,
		s.DSStatus == StatusRejected:
		return StageRejected
	case s.IsCompleted:
		return StageCompleted
	case s.IsPublished:
		return StagePublished
	case s.FinalStatus == StatusApproved:
		return StageApproved
	case s.AdminStatus != StatusApproved:
		return StagePendingAdmin
	case s.GSStatus != StatusApproved:
		return StagePendingGS
	default:
		return StagePendingDS
	}
}

// waitingOn maps each approval gate to the stage it acts on
var waitingOn = map[Gate]Stage{
	GateAdmin: StagePendingAdmin,
	GateGS:    StagePendingGS,
	GateDS:    StagePendingDS,
}

// Transition applies an action at a gate and returns the next state.
// The input state is never modified.
func Transition(s CauseState, gate Gate, action Action) (CauseState, error) {
	if action != ActionApprove && action != ActionReject {
		return s, ErrInvalidAction
	}
	if s.Stage() == StageRejected {
		return s, ErrCauseRejected
	}

	next := s
	switch gate {
	case GatePublish:
		if action != ActionApprove {
			return s, ErrPublishHasNoReject
		}
		if s.IsPublished {
			return s, ErrAlreadyPublished
		}
		if s.FinalStatus != StatusApproved {
			return s, ErrNotFullyApproved
		}
		next.IsPublished = true
		return next, nil

	case GateAdmin, GateGS, GateDS:
		if s.Stage() != waitingOn[gate] {
			return s, ErrWrongStage
		}
	default:
		return s, ErrWrongStage
	}

	if action == ActionReject {
		next.FinalStatus = StatusRejected
		switch gate {
		case GateAdmin:
			// a rejection at the first gate closes the next one too
			next.AdminStatus = StatusRejected
			next.GSStatus = StatusRejected
		case GateGS:
			next.GSStatus = StatusRejected
		case GateDS:
			next.DSStatus = StatusRejected
		}
		return next, nil
	}

	switch gate {
	case GateAdmin:
		next.AdminStatus = StatusApproved
		next.GSStatus = StatusPending
	case GateGS:
		next.GSStatus = StatusApproved
		next.DSStatus = StatusPending
	case GateDS:
		next.DSStatus = StatusApproved
		next.FinalStatus = StatusApproved
	}
	return next, nil
}
