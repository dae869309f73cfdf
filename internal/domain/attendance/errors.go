package attendance

import "errors"

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNoCheckIn         = errors.New("no check-in found for today")
)
