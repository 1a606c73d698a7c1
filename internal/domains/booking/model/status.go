package model

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"slices"
)

// Status mirrors the booking_statuses lookup table.
type Status int

const (
	StatusPending Status = iota + 1
	StatusConfirmed
	StatusCancelled
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCancelled: "Cancelled",
	StatusCompleted: "Completed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "Unknown"
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]

	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Occupies reports whether a booking in s holds its room for its dates.
func (s Status) Occupies() bool {
	return s.Valid() && s != StatusCancelled
}

type edge struct {
	from Status
	to   Status
}

// Guests may cancel only their own bookings; ownership is checked by the caller.
var transitions = map[edge][]string{
	{StatusPending, StatusConfirmed}:   {constant.RoleAdmin, constant.RoleStaff, constant.RoleSystem},
	{StatusConfirmed, StatusCompleted}: {constant.RoleAdmin, constant.RoleStaff},
	{StatusPending, StatusCancelled}:   {constant.RoleAdmin, constant.RoleGuest, constant.RoleSystem},
	{StatusConfirmed, StatusCancelled}: {constant.RoleAdmin, constant.RoleGuest, constant.RoleSystem},
}

// IsTransition reports whether from -> to is an edge of the booking state machine.
func IsTransition(from, to Status) bool {
	_, ok := transitions[edge{from, to}]

	return ok
}

// CanTransition reports whether role may move a booking from one status to another.
func CanTransition(role model.Role, from, to Status) bool {
	roles, ok := transitions[edge{from, to}]
	if !ok {
		return false
	}

	return slices.Contains(roles, role.Name)
}

// TransitionNote names the event stamped on a booking when it moves to status to.
func TransitionNote(to Status) string {
	switch to {
	case StatusConfirmed:
		return NoteCheckedIn
	case StatusCompleted:
		return NoteCheckedOut
	case StatusCancelled:
		return NoteCancelled
	default:
		return ""
	}
}
