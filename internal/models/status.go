package models

import (
	"errors"
	"fmt"
	"time"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusExpired   ReservationStatus = "expired"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the single source of truth for the reservation state
// machine. A status missing from the map is terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusExpired},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s ReservationStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// TransitionTo mutates the reservation's status after validating the move
// against the transition table. Cancellations stamp CancelledAt.
func (r *Reservation) TransitionTo(next ReservationStatus, at time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	if next == StatusCancelled {
		t := at
		r.CancelledAt = &t
	}
	return nil
}
