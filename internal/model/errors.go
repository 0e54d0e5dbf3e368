package model

import "errors"

var (
	// ErrInvalidDateFormat is returned when an announcement header does not match
	// "<DayOfWeek> <DD/MM> @<HH:MM>" or names an impossible date.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrNotEnoughPlayers is returned when fewer than MatchSize players resolve.
	ErrNotEnoughPlayers = errors.New("not enough players")
	// ErrMalformedRecord is returned for any tabular row or field that fails validation.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnresolvedPlayer marks an announcement name with no roster match. Non-fatal.
	ErrUnresolvedPlayer = errors.New("unresolved player")
	// ErrUnknownPlayer is returned when a team references an id missing from the roster.
	ErrUnknownPlayer = errors.New("unknown player")
)
