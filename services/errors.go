package services

import "errors"

var (
	// ErrEmptyRanking is returned when no venue group was ranked. Normalising
	// an all-zero weight vector would divide by zero.
	ErrEmptyRanking = errors.New("preference ranking is empty")
	// ErrDuplicateGroup is returned when a ranking names a group twice.
	ErrDuplicateGroup = errors.New("venue group ranked more than once")
	// ErrUnknownGroup is returned for names outside the nine venue groups.
	ErrUnknownGroup = errors.New("unknown venue group")
	// ErrUnknownCategory is returned for unrecognised accommodation types.
	ErrUnknownCategory = errors.New("unknown accommodation type")
	// ErrInvalidTopN is returned when fewer than one result is requested.
	ErrInvalidTopN = errors.New("number of recommendations must be at least 1")
)
