package booking

import (
	"errors"
	"fmt"
)

type Action string

const (
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionCancel         Action = "cancel"
	ActionStart          Action = "start"
	ActionComplete       Action = "complete"
	ActionConfirmPayment Action = "confirm_payment"
)

func (a Action) String() string {
	return string(a)
}

var ErrInvalidTransition = errors.New("invalid booking status transition")

var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionAccept: StatusAccepted,
		ActionReject: StatusRejected,
		ActionCancel: StatusCancelled,
	},
	StatusAccepted: {
		ActionCancel:         StatusCancelled,
		ActionStart:          StatusInProgress,
		ActionComplete:       StatusCompleted,
		ActionConfirmPayment: StatusConfirmed,
	},
	StatusConfirmed: {
		ActionCancel:         StatusCancelled,
		ActionStart:          StatusInProgress,
		ActionComplete:       StatusCompleted,
		ActionConfirmPayment: StatusConfirmed,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
	},
}

// TransitionError carries the current state and the attempted action.
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %s", e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NextStatus looks up the transition table.
func NextStatus(from Status, action Action) (Status, error) {
	to, ok := transitions[from][action]
	if !ok {
		return "", &TransitionError{From: from, Action: action}
	}
	return to, nil
}

func CanTransition(from Status, action Action) bool {
	_, err := NextStatus(from, action)
	return err == nil
}
