package leave

import "errors"

var (
	ErrInvalidDates        = errors.New("from date must be on or before to date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrAlreadyDecided      = errors.New("leave application already decided")
	ErrNotFound            = errors.New("leave application not found")
	ErrUnknownType         = errors.New("unknown leave type")
)
